package domain

import "time"

// Category groups products in the catalog. Names are unique.
type Category struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Product is a sellable catalog item.
type Product struct {
	ID              int64     `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	DescriptionLong string    `json:"description_long,omitempty" bson:"description_long,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	CategoryIDs     []int64   `json:"category_ids" bson:"category_ids"`
	ImageURLs       []string  `json:"image_urls" bson:"image_urls"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
