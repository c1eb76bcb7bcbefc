package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raushankrgupta/retailnext/models"
)

const (
	// PostsCollection is the collection MongoStore keeps posts in.
	PostsCollection = "posts"

	mongoTimeout = 10 * time.Second
)

// MongoStore keeps posts in a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore uses the posts collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(PostsCollection)}
}

func (s *MongoStore) List(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *MongoStore) Add(ctx context.Context, post models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *MongoStore) Like(ctx context.Context, id string) (models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := s.coll.UpdateMany(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return models.Post{}, fmt.Errorf("like post: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return s.Get(ctx, id)
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *MongoStore) Top(ctx context.Context, n int) ([]models.Post, error) {
	if n <= 0 {
		n = DefaultTop
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: 1}}).
		SetLimit(int64(n))
	return s.find(ctx, opts)
}

func (s *MongoStore) Recent(ctx context.Context, n int) ([]models.Post, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(n))
	return s.find(ctx, opts)
}

func (s *MongoStore) find(ctx context.Context, opts *options.FindOptions) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}
