package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

const profileCollection = "profiles"

type MongoProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profileCollection)}
}

type mongoProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name,omitempty"`
	Gender    string             `bson:"gender,omitempty"`
	BirthDate *time.Time         `bson:"birth_date,omitempty"`
	Zodiac    string             `bson:"zodiac,omitempty"`
	Horoscope string             `bson:"horoscope,omitempty"`
	Height    int                `bson:"height,omitempty"`
	Weight    int                `bson:"weight,omitempty"`
	Interests []string           `bson:"interests,omitempty"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mp mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:        mp.ID.Hex(),
		Name:      mp.Name,
		Gender:    mp.Gender,
		BirthDate: mp.BirthDate,
		Zodiac:    mp.Zodiac,
		Horoscope: mp.Horoscope,
		Height:    mp.Height,
		Weight:    mp.Weight,
		Interests: mp.Interests,
		Image:     mp.Image,
		CreatedAt: unixToTime(mp.CreatedAt),
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}
}

func (r *MongoProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	doc := mongoProfile{
		Name:      profile.Name,
		Gender:    profile.Gender,
		BirthDate: profile.BirthDate,
		Zodiac:    profile.Zodiac,
		Horoscope: profile.Horoscope,
		Height:    profile.Height,
		Weight:    profile.Weight,
		Interests: profile.Interests,
		Image:     profile.Image,
		CreatedAt: profile.CreatedAt.Unix(),
		UpdatedAt: profile.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	created := *profile
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProfileRepository) Update(ctx context.Context, id string, fields ports.ProfileFields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Gender != nil {
		set["gender"] = *fields.Gender
	}
	if fields.BirthDate != nil {
		set["birth_date"] = *fields.BirthDate
	}
	if fields.Zodiac != nil {
		set["zodiac"] = *fields.Zodiac
	}
	if fields.Horoscope != nil {
		set["horoscope"] = *fields.Horoscope
	}
	if fields.Height != nil {
		set["height"] = *fields.Height
	}
	if fields.Weight != nil {
		set["weight"] = *fields.Weight
	}
	if fields.Interests != nil {
		set["interests"] = fields.Interests
	}
	if fields.Image != nil {
		set["image"] = *fields.Image
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *MongoProfileRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
