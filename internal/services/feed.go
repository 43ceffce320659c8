package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// FeedService builds the home timeline on read from the follow graph.
type FeedService struct {
	db    *gorm.DB
	posts repositories.PostStore
}

func NewFeedService(db *gorm.DB, posts repositories.PostStore) *FeedService {
	return &FeedService{db: db, posts: posts}
}

// Build returns one page of posts by the users userID follows, newest
// first, with the total across all pages. Following nobody yields an
// empty feed without touching the post store.
func (s *FeedService) Build(ctx context.Context, userID uint, page Page) ([]models.EnrichedPost, int64, error) {
	db := s.db.WithContext(ctx)
	following, err := repositories.NewPostgresFollowRepository(db).GetFollowingIDs(userID)
	if err != nil {
		return nil, 0, err
	}
	if len(following) == 0 {
		return []models.EnrichedPost{}, 0, nil
	}

	posts, total, err := s.posts(db).ListPosts(ctx, models.PostFilter{
		AuthorIDs: following,
		Offset:    page.Offset(),
		Limit:     page.Size,
	})
	if err != nil {
		return nil, 0, err
	}
	enriched, err := enrichPosts(db, userID, posts)
	if err != nil {
		return nil, 0, err
	}
	return enriched, total, nil
}
