package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

const roleCollection = "roles"

// MongoRoleRepository persists roles. Deletion is a soft delete; retired
// roles stay on disk but are filtered out of lookups.
type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	IsActive    bool   `bson:"is_active"`
	CreatedBy   string `bson:"created_by,omitempty"`
	UpdatedBy   string `bson:"updated_by,omitempty"`
	DeletedBy   string `bson:"deleted_by,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
	DeletedAt   int64  `bson:"deleted_at,omitempty"`
}

func toMongoRole(role *domain.Role) mongoRole {
	mr := mongoRole{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		CreatedBy:   role.CreatedBy,
		UpdatedBy:   role.UpdatedBy,
		DeletedBy:   role.DeletedBy,
		CreatedAt:   role.CreatedAt.Unix(),
		UpdatedAt:   role.UpdatedAt.Unix(),
	}
	if role.DeletedAt != nil {
		mr.DeletedAt = role.DeletedAt.Unix()
	}
	return mr
}

func (mr mongoRole) toDomain() *domain.Role {
	role := &domain.Role{
		ID:          mr.ID,
		Name:        mr.Name,
		Description: mr.Description,
		IsActive:    mr.IsActive,
		CreatedBy:   mr.CreatedBy,
		UpdatedBy:   mr.UpdatedBy,
		DeletedBy:   mr.DeletedBy,
		CreatedAt:   unixToTime(mr.CreatedAt),
		UpdatedAt:   unixToTime(mr.UpdatedAt),
	}
	if mr.DeletedAt != 0 {
		t := unixToTime(mr.DeletedAt)
		role.DeletedAt = &t
	}
	return role
}

func (r *MongoRoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	if _, err := r.coll.InsertOne(ctx, toMongoRole(role)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return r.FindByID(ctx, role.ID)
}

func (r *MongoRoleRepository) FindAll(ctx context.Context, includeInactive bool) ([]*domain.Role, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	roles := make([]*domain.Role, 0)
	for cursor.Next(ctx) {
		var mr mongoRole
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (r *MongoRoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_active": true})
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name": name, "is_active": true})
}

func (r *MongoRoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID, "is_active": true}, toMongoRole(role))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return r.FindByID(ctx, role.ID)
}

func (r *MongoRoleRepository) SoftDelete(ctx context.Context, id, actorID string) (*domain.Role, error) {
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"deleted_by": actorID,
			"deleted_at": now.Unix(),
			"updated_at": now.Unix(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("soft delete role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}

	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mr); err != nil {
		return nil, fmt.Errorf("reload role: %w", err)
	}
	return mr.toDomain(), nil
}
