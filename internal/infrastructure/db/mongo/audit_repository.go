package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

// AuditRepository appends security audit events. Documents are never updated.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	Actor    string    `bson:"actor"`
	Action   string    `bson:"action"`
	TargetID int64     `bson:"target_id,omitempty"`
	Target   string    `bson:"target,omitempty"`
	Outcome  string    `bson:"outcome"`
	Reason   string    `bson:"reason,omitempty"`
	At       time.Time `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, e domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, auditDoc{
		Actor:    e.Actor,
		Action:   string(e.Action),
		TargetID: e.TargetID,
		Target:   e.Target,
		Outcome:  string(e.Outcome),
		Reason:   e.Reason,
		At:       e.At,
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes by actor and by target account.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
