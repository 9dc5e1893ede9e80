package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/complexlab/rentalfleet/domain"
)

// UserRepository implements domain.UserRepository on MongoDB.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository creates a UserRepository and ensures its indexes.
func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	repo := &UserRepository{
		users: db.Collection(UsersCollection),
	}
	if err := repo.createIndexes(ctx); err != nil {
		// Index creation commonly fails when compatible indexes already
		// exist; log and continue rather than refusing to start.
		log.Warn().Err(err).Msg("Failed to create user indexes")
	}
	return repo, nil
}

func (r *UserRepository) createIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.users.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes for users collection: %w", err)
	}
	return nil
}

// CreateUser persists a new identity with the next sequential id. The
// count+1 assignment mirrors the identity store this replaces; it can race
// under concurrent sign-ups, and the unique username index is what actually
// guards duplicates.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	existing := r.users.FindOne(ctx, bson.M{"username": user.Username})
	if existing.Err() == nil {
		return domain.ErrUserExists
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return fmt.Errorf("checking username: %w", existing.Err())
	}

	count, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	user.ID = int(count) + 1

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		log.Error().Err(err).Str("username", user.Username).Msg("Error creating user in MongoDB")
		return err
	}
	return nil
}

// GetUserByUsername retrieves the unique identity for a username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		log.Error().Err(err).Str("username", username).Msg("Error getting user from MongoDB")
		return nil, err
	}
	return &user, nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
