package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/youapp/profile-api/internal/core/domain"
)

const accountCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	Username         string              `bson:"username"`
	Email            string              `bson:"email"`
	PasswordHash     string              `bson:"password_hash"`
	RefreshTokenHash string              `bson:"refresh_token_hash,omitempty"`
	ProfileID        *primitive.ObjectID `bson:"profile_id,omitempty"`
	CreatedAt        int64               `bson:"created_at"`
	UpdatedAt        int64               `bson:"updated_at"`
}

func (ma mongoAccount) toDomain() *domain.Account {
	account := &domain.Account{
		ID:               ma.ID.Hex(),
		Username:         ma.Username,
		Email:            ma.Email,
		PasswordHash:     ma.PasswordHash,
		RefreshTokenHash: ma.RefreshTokenHash,
		CreatedAt:        unixToTime(ma.CreatedAt),
		UpdatedAt:        unixToTime(ma.UpdatedAt),
	}
	if ma.ProfileID != nil {
		account.ProfileID = ma.ProfileID.Hex()
	}
	return account
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) UpdateRefreshTokenHash(ctx context.Context, id, hash string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"refresh_token_hash": hash, "updated_at": time.Now().UTC().Unix()},
	})
}

func (r *MongoAccountRepository) ClearRefreshTokenHash(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$unset": bson.M{"refresh_token_hash": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC().Unix()},
	})
}

func (r *MongoAccountRepository) SetProfileID(ctx context.Context, id, profileID string) error {
	poid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", profileID, err)
	}
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"profile_id": poid, "updated_at": time.Now().UTC().Unix()},
	})
}

func (r *MongoAccountRepository) ClearProfileID(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$unset": bson.M{"profile_id": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC().Unix()},
	})
}

func (r *MongoAccountRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
