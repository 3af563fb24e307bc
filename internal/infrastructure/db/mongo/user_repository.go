package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gms2/gms-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID                 string    `bson:"_id"`
	UserName           string    `bson:"user_name"`
	NormalizedUserName string    `bson:"normalized_user_name"`
	Email              string    `bson:"email"`
	NormalizedEmail    string    `bson:"normalized_email"`
	PasswordHash       string    `bson:"password_hash"`
	FirstName          string    `bson:"first_name"`
	LastName           string    `bson:"last_name"`
	AddressLine1       string    `bson:"address_line1"`
	City               string    `bson:"city"`
	State              string    `bson:"state"`
	PhoneNumber        string    `bson:"phone_number"`
	Roles              []string  `bson:"roles"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func toUserDocument(u *domain.User) userDocument {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userDocument{
		ID:                 u.ID,
		UserName:           u.UserName,
		NormalizedUserName: u.NormalizedUserName,
		Email:              u.Email,
		NormalizedEmail:    u.NormalizedEmail,
		PasswordHash:       u.PasswordHash,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		AddressLine1:       u.AddressLine1,
		City:               u.City,
		State:              u.State,
		PhoneNumber:        u.PhoneNumber,
		Roles:              roles,
		CreatedAt:          u.CreatedAt.UTC(),
		UpdatedAt:          u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID,
		UserName:           d.UserName,
		NormalizedUserName: d.NormalizedUserName,
		Email:              d.Email,
		NormalizedEmail:    d.NormalizedEmail,
		PasswordHash:       d.PasswordHash,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		AddressLine1:       d.AddressLine1,
		City:               d.City,
		State:              d.State,
		PhoneNumber:        d.PhoneNumber,
		Roles:              d.Roles,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

// profileUpdate builds the $set document for a directory update. Password
// hash, roles and creation time are never part of it.
func profileUpdate(u *domain.User, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"user_name":            u.UserName,
		"normalized_user_name": u.NormalizedUserName,
		"email":                u.Email,
		"normalized_email":     u.NormalizedEmail,
		"first_name":           u.FirstName,
		"last_name":            u.LastName,
		"address_line1":        u.AddressLine1,
		"city":                 u.City,
		"state":                u.State,
		"phone_number":         u.PhoneNumber,
		"updated_at":           now.UTC(),
	}}
}

// List returns all users in natural (insertion) order.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByLogin matches a normalized username or email.
func (r *UserRepository) FindByLogin(ctx context.Context, normalized string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"normalized_user_name": normalized},
		bson.M{"normalized_email": normalized},
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toUserDocument(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update writes the profile fields of u. A changed username or email that
// collides with another account yields domain.ErrUserExists.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, u.ID, profileUpdate(u, time.Now()))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique lookup indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "normalized_user_name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "normalized_email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roles", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
