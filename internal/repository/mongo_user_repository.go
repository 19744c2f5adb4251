package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedsvc/internal/db"
	"feedsvc/internal/model"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Password     string             `bson:"password"`
	FullName     string             `bson:"full_name,omitempty"`
	ProfilePhoto string             `bson:"profile_photo,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		FullName:     d.FullName,
		ProfilePhoto: d.ProfilePhoto,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUserRepository builds a repository over the users collection of database.
func NewMongoUserRepository(database *mongo.Database) UserRepository {
	return &mongoUserRepository{
		coll: database.Collection(db.UsersCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	now := r.now()
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Password:     user.PasswordHash,
		FullName:     user.FullName,
		ProfilePhoto: user.ProfilePhoto,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.D{{Key: "_id", Value: oid}}

	var doc userDocument
	if upd.IsEmpty() {
		err = r.coll.FindOne(ctx, filter).Decode(&doc)
	} else {
		set := bson.D{{Key: "updatedAt", Value: r.now()}}
		if upd.FullName != nil {
			set = append(set, bson.E{Key: "full_name", Value: *upd.FullName})
		}
		if upd.ProfilePhoto != nil {
			set = append(set, bson.E{Key: "profile_photo", Value: *upd.ProfilePhoto})
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) ListByCreatedDesc(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].toModel())
	}
	return users, nil
}
