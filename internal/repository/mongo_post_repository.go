package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedsvc/internal/db"
	"feedsvc/internal/model"
)

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	PostImage string             `bson:"postImage"`
	Caption   string             `bson:"caption"`
	Likes     int                `bson:"likes"`
	Timestamp time.Time          `bson:"timestamp"`
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository builds a repository over the posts collection of database.
func NewMongoPostRepository(database *mongo.Database) PostRepository {
	return &mongoPostRepository{coll: database.Collection(db.PostsCollection)}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *model.Post) error {
	doc := postDocument{
		ID:        primitive.NewObjectID(),
		Username:  post.Username,
		PostImage: post.PostImage,
		Caption:   post.Caption,
		Likes:     post.Likes,
		Timestamp: post.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = doc.ID.Hex()
	return nil
}

func (r *mongoPostRepository) ListByTimestampDesc(ctx context.Context) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]model.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, model.Post{
			ID:        d.ID.Hex(),
			Username:  d.Username,
			PostImage: d.PostImage,
			Caption:   d.Caption,
			Likes:     d.Likes,
			Timestamp: d.Timestamp,
		})
	}
	return posts, nil
}
