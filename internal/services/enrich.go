package services

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// enrichPosts attaches author, counters and the viewer's like/save flags.
// Output order matches posts.
func enrichPosts(tx *gorm.DB, viewerID uint, posts []models.Post) ([]models.EnrichedPost, error) {
	result := make([]models.EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	authors, err := repositories.NewPostgresUserRepository(tx).GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	likes := repositories.NewPostgresLikeRepository(tx)
	likeCounts, err := likes.CountByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := likes.LikedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := repositories.NewPostgresCommentRepository(tx).CountByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	saved, err := repositories.NewPostgresSavedPostRepository(tx).GetSavedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		author := authors[p.AuthorID]
		result = append(result, models.EnrichedPost{
			Post:          p,
			Author:        author.ToCompact(),
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLiked:       liked[p.ID],
			IsSaved:       saved[p.ID],
		})
	}
	return result, nil
}

func enrichComments(tx *gorm.DB, comments []models.Comment) ([]models.EnrichedComment, error) {
	result := make([]models.EnrichedComment, 0, len(comments))
	if len(comments) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(comments))
	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := repositories.NewPostgresUserRepository(tx).GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	counts, err := repositories.NewPostgresCommentLikeRepository(tx).CountByCommentIDs(ids)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		author := authors[c.AuthorID]
		result = append(result, models.EnrichedComment{
			Comment:    c,
			Author:     author.ToCompact(),
			LikesCount: counts[c.ID],
		})
	}
	return result, nil
}
