package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.Post{AuthorID: 1, Title: "hi", Content: "there"}
		if err := repo.CreatePost(context.Background(), post); err != nil {
			t.Fatalf("create: %v", err)
		}
		if len(post.ID) != 24 || post.CreatedAt.IsZero() {
			t.Fatalf("expected object id hex and timestamp, got %+v", post)
		}
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		ns := mt.DB.Name() + ".posts"
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "abc"},
			{Key: "author_id", Value: 7},
			{Key: "title", Value: "hello"},
			{Key: "content", Value: "world"},
			{Key: "created_at", Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		}))

		post, err := repo.GetPostByID(context.Background(), "abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if post.ID != "abc" || post.AuthorID != 7 || post.Title != "hello" {
			t.Fatalf("unexpected post %+v", post)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		ns := mt.DB.Name() + ".posts"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.GetPostByID(context.Background(), "nope"); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("expected ErrPostNotFound, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		ns := mt.DB.Name() + ".posts"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "b"}, {Key: "author_id", Value: 1}, {Key: "title", Value: "second"}},
				bson.D{{Key: "_id", Value: "a"}, {Key: "author_id", Value: 1}, {Key: "title", Value: "first"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		posts, total, err := repo.ListPosts(context.Background(), models.PostFilter{AuthorIDs: []uint{1}, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(posts) != 2 || posts[0].ID != "b" {
			t.Fatalf("unexpected listing total=%d posts=%+v", total, posts)
		}
	})

	mt.Run("list with empty author set skips the query", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		posts, total, err := repo.ListPosts(context.Background(), models.PostFilter{AuthorIDs: []uint{}, Limit: 10})
		if err != nil || total != 0 || len(posts) != 0 {
			t.Fatalf("expected empty result, got %d %v %v", total, posts, err)
		}
	})

	mt.Run("update and delete report missing posts", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		if err := repo.UpdatePost(context.Background(), &models.Post{ID: "gone"}); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("expected ErrPostNotFound on update, got %v", err)
		}
		if err := repo.DeletePost(context.Background(), "gone"); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("expected ErrPostNotFound on delete, got %v", err)
		}
	})
}

func TestMongoPostQuery(t *testing.T) {
	q := mongoPostQuery(models.PostFilter{AuthorIDs: []uint{1, 2}, Search: "a.b", SearchAuthorIDs: []uint{3}})
	if _, ok := q["author_id"]; !ok {
		t.Fatalf("expected author filter in %v", q)
	}
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected three alternatives, got %v", q["$or"])
	}
}
