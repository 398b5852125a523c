package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

const auditCollection = "auth_events"

// MongoAuditRepository persists the authentication audit trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	ID            string `bson:"_id"`
	Event         string `bson:"event"`
	Subject       string `bson:"subject"`
	UserID        string `bson:"user_id,omitempty"`
	CorrelationID string `bson:"correlation_id,omitempty"`
	OccurredAt    int64  `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		ID:            event.ID,
		Event:         event.Event,
		Subject:       event.Subject,
		UserID:        event.UserID,
		CorrelationID: event.CorrelationID,
		OccurredAt:    event.OccurredAt.Unix(),
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		doc.OccurredAt = time.Now().Unix()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) FindRecent(ctx context.Context, limit int64) ([]*domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]*domain.AuthEvent, 0)
	for cursor.Next(ctx) {
		var me mongoAuthEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, &domain.AuthEvent{
			ID:            me.ID,
			Event:         me.Event,
			Subject:       me.Subject,
			UserID:        me.UserID,
			CorrelationID: me.CorrelationID,
			OccurredAt:    unixToTime(me.OccurredAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate auth events: %w", err)
	}
	return events, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
