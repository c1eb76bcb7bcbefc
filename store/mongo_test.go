package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/raushankrgupta/retailnext/models"
)

const postsNS = "retailnext.posts"

func postDoc(id string, likes int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "image_url", Value: "https://img/" + id + ".png"},
		{Key: "gender", Value: "Men"},
		{Key: "likes", Value: likes},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("add", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.Add(context.Background(), models.Post{ID: "p1"})
		require.NoError(mt, err)
	})

	mt.Run("top", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch,
			postDoc("b", 5),
			postDoc("a", 2),
		))

		posts, err := s.Top(context.Background(), 2)
		require.NoError(mt, err)
		require.Equal(mt, []string{"b", "a"}, ids(posts))
		require.Equal(mt, 5, posts[0].Likes)
	})

	mt.Run("recent empty", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		posts, err := s.Recent(context.Background(), 0)
		require.NoError(mt, err)
		require.NotNil(mt, posts)
		require.Empty(mt, posts)
	})

	mt.Run("like", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, postDoc("a", 3)),
		)

		post, err := s.Like(context.Background(), "a")
		require.NoError(mt, err)
		require.Equal(mt, "a", post.ID)
		require.Equal(mt, 3, post.Likes)
	})

	mt.Run("like unknown", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		_, err := s.Like(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrPostNotFound)
	})

	mt.Run("get unknown", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		_, err := s.Get(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrPostNotFound)
	})
}
