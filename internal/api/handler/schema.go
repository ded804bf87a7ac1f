package handler

import (
	"time"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Kind  string `json:"kind" example:"forbidden"`
	Error string `json:"error" example:"access forbidden"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,printascii"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	Username    string `json:"username"`
	Role        string `json:"role" example:"USER"`
}

// --- Users ---

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50,printascii"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// --- Catalog ---

type categoryRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type productRequest struct {
	Name            string   `json:"name"             validate:"required,max=200"`
	Description     string   `json:"description"      validate:"required,max=500"`
	DescriptionLong string   `json:"description_long" validate:"max=5000"`
	Price           float64  `json:"price"            validate:"gt=0"`
	Quantity        int      `json:"quantity"         validate:"gte=0"`
	CategoryIDs     []int64  `json:"category_ids"     validate:"dive,gt=0"`
	ImageURLs       []string `json:"image_urls"       validate:"dive,url"`
}
