package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContentService owns posts, comments, likes and bookmarks.
type ContentService struct {
	db    *gorm.DB
	posts repositories.PostStore
}

func NewContentService(db *gorm.DB, posts repositories.PostStore) *ContentService {
	return &ContentService{db: db, posts: posts}
}

// authorize fails unless actorID authored the entity.
func authorize(actorID, authorID uint) error {
	if actorID != authorID {
		return errs.ErrPermission
	}
	return nil
}

func loadPost(ctx context.Context, repo repositories.PostRepository, postID string) (*models.Post, error) {
	post, err := repo.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return nil, errs.Errorf(errs.NotFound, "post %s not found", postID)
	}
	return post, err
}

func loadComment(tx *gorm.DB, commentID uint) (*models.Comment, error) {
	comment, err := repositories.NewPostgresCommentRepository(tx).GetCommentByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.NotFound, "comment %d not found", commentID)
	}
	return comment, err
}

// CreatePost stores a post authored by authorID.
func (s *ContentService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.EnrichedPost, error) {
	db := s.db.WithContext(ctx)
	post := &models.Post{
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if post.Title == "" {
		return nil, errs.Errorf(errs.Validation, "title must not be blank")
	}
	if err := s.posts(db).CreatePost(ctx, post); err != nil {
		return nil, err
	}
	metrics.PostsCreated.Inc()

	enriched, err := enrichPosts(db, authorID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// GetPost returns a single post as seen by viewerID.
func (s *ContentService) GetPost(ctx context.Context, viewerID uint, postID string) (*models.EnrichedPost, error) {
	db := s.db.WithContext(ctx)
	post, err := loadPost(ctx, s.posts(db), postID)
	if err != nil {
		return nil, err
	}
	enriched, err := enrichPosts(db, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// ListPosts pages through all posts, newest first. A non-empty search
// matches title, content or author username, ignoring case.
func (s *ContentService) ListPosts(ctx context.Context, viewerID uint, search string, page Page) ([]models.EnrichedPost, int64, error) {
	db := s.db.WithContext(ctx)
	filter := models.PostFilter{
		Search: strings.TrimSpace(search),
		Offset: page.Offset(),
		Limit:  page.Size,
	}
	if filter.Search != "" {
		ids, err := repositories.NewPostgresUserRepository(db).SearchUserIDsByUsername(filter.Search)
		if err != nil {
			return nil, 0, err
		}
		filter.SearchAuthorIDs = ids
	}

	posts, total, err := s.posts(db).ListPosts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	enriched, err := enrichPosts(db, viewerID, posts)
	if err != nil {
		return nil, 0, err
	}
	return enriched, total, nil
}

// UpdatePost edits title and/or content. Only the author may do this.
func (s *ContentService) UpdatePost(ctx context.Context, actorID uint, postID string, req models.UpdatePostRequest) (*models.EnrichedPost, error) {
	if req.Title == "" && req.Content == "" {
		return nil, errs.Errorf(errs.Validation, "nothing to update")
	}
	title := strings.TrimSpace(req.Title)
	if req.Title != "" && title == "" {
		return nil, errs.Errorf(errs.Validation, "title must not be blank")
	}

	db := s.db.WithContext(ctx)
	repo := s.posts(db)
	post, err := loadPost(ctx, repo, postID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, post.AuthorID); err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if err := repo.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, errs.Errorf(errs.NotFound, "post %s not found", postID)
		}
		return nil, err
	}

	enriched, err := enrichPosts(db, actorID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// DeletePost removes the post with its comments, comment likes, likes,
// bookmarks and every notification targeting the post or its comments.
// The post row goes last so a failed cleanup leaves it in place.
//
// The Mongo store is not enlisted in the gorm transaction: its delete is
// applied immediately, so a commit failing after it leaves the post gone
// and its Postgres rows orphaned.
func (s *ContentService) DeletePost(ctx context.Context, actorID uint, postID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.posts(tx)
		post, err := loadPost(ctx, repo, postID)
		if err != nil {
			return err
		}
		if err := authorize(actorID, post.AuthorID); err != nil {
			return err
		}

		comments := repositories.NewPostgresCommentRepository(tx)
		commentIDs, err := comments.GetCommentIDsByPostID(postID)
		if err != nil {
			return err
		}
		if err := repositories.NewPostgresCommentLikeRepository(tx).DeleteByCommentIDs(commentIDs); err != nil {
			return err
		}

		targets := []models.Target{models.PostTarget{PostID: postID}}
		for _, id := range commentIDs {
			targets = append(targets, models.CommentTarget{CommentID: id})
		}
		if err := repositories.NewPostgresNotificationRepository(tx).DeleteByTargets(targets); err != nil {
			return err
		}
		if err := comments.DeleteByPostID(postID); err != nil {
			return err
		}
		if err := repositories.NewPostgresLikeRepository(tx).DeleteByPostID(postID); err != nil {
			return err
		}
		if err := repositories.NewPostgresSavedPostRepository(tx).DeleteByPostID(postID); err != nil {
			return err
		}

		if err := repo.DeletePost(ctx, postID); err != nil {
			if errors.Is(err, repositories.ErrPostNotFound) {
				return errs.Errorf(errs.NotFound, "post %s not found", postID)
			}
			return err
		}
		logrus.WithFields(logrus.Fields{"post": postID, "comments": len(commentIDs)}).Info("post deleted")
		return nil
	})
}

// ToggleLike likes the post if userID has not, otherwise removes the like.
// Only a new like notifies the author.
func (s *ContentService) ToggleLike(ctx context.Context, userID uint, postID string) (models.ToggleResult, error) {
	var result models.ToggleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := loadPost(ctx, s.posts(tx), postID)
		if err != nil {
			return err
		}

		likes := repositories.NewPostgresLikeRepository(tx)
		created, err := likes.CreateLike(&models.Like{UserID: userID, PostID: postID})
		if err != nil {
			return err
		}
		if created {
			result.Liked = true
			return notify(tx, post.AuthorID, userID, VerbLikedPost, models.PostTarget{PostID: postID})
		}

		err = likes.DeleteLike(postID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// removed concurrently; the outcome is the same
			return nil
		}
		return err
	})
	if err != nil {
		return models.ToggleResult{}, err
	}
	metrics.LikeToggles.WithLabelValues("post", string(result.Status())).Inc()
	return result, nil
}

// ListComments returns a post's comments, oldest first.
func (s *ContentService) ListComments(ctx context.Context, postID string, page Page) ([]models.EnrichedComment, int64, error) {
	db := s.db.WithContext(ctx)
	if _, err := loadPost(ctx, s.posts(db), postID); err != nil {
		return nil, 0, err
	}
	comments, total, err := repositories.NewPostgresCommentRepository(db).GetCommentsByPostID(postID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	enriched, err := enrichComments(db, comments)
	if err != nil {
		return nil, 0, err
	}
	return enriched, total, nil
}

// CreateComment adds a comment to postID and notifies the post author.
func (s *ContentService) CreateComment(ctx context.Context, authorID uint, postID string, req models.CommentRequest) (*models.EnrichedComment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errs.Errorf(errs.Validation, "content must not be blank")
	}

	var enriched []models.EnrichedComment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := loadPost(ctx, s.posts(tx), postID)
		if err != nil {
			return err
		}
		comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
		if err := repositories.NewPostgresCommentRepository(tx).CreateComment(comment); err != nil {
			return err
		}
		if err := notify(tx, post.AuthorID, authorID, VerbCommented, models.PostTarget{PostID: postID}); err != nil {
			return err
		}
		enriched, err = enrichComments(tx, []models.Comment{*comment})
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.CommentsCreated.Inc()
	return &enriched[0], nil
}

// UpdateComment edits a comment. Only the author may do this.
func (s *ContentService) UpdateComment(ctx context.Context, actorID, commentID uint, req models.CommentRequest) (*models.EnrichedComment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errs.Errorf(errs.Validation, "content must not be blank")
	}

	var enriched []models.EnrichedComment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := loadComment(tx, commentID)
		if err != nil {
			return err
		}
		if err := authorize(actorID, comment.AuthorID); err != nil {
			return err
		}
		comment.Content = content
		if err := repositories.NewPostgresCommentRepository(tx).UpdateComment(comment); err != nil {
			return err
		}
		enriched, err = enrichComments(tx, []models.Comment{*comment})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// DeleteComment removes a comment, its likes and the notifications
// pointing at it. Only the author may do this.
func (s *ContentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := loadComment(tx, commentID)
		if err != nil {
			return err
		}
		if err := authorize(actorID, comment.AuthorID); err != nil {
			return err
		}
		if err := repositories.NewPostgresCommentLikeRepository(tx).DeleteByCommentIDs([]uint{commentID}); err != nil {
			return err
		}
		target := models.CommentTarget{CommentID: commentID}
		if err := repositories.NewPostgresNotificationRepository(tx).DeleteByTargets([]models.Target{target}); err != nil {
			return err
		}
		return repositories.NewPostgresCommentRepository(tx).DeleteComment(commentID)
	})
}

// ToggleCommentLike mirrors ToggleLike for comments.
func (s *ContentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (models.ToggleResult, error) {
	var result models.ToggleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := loadComment(tx, commentID)
		if err != nil {
			return err
		}

		likes := repositories.NewPostgresCommentLikeRepository(tx)
		created, err := likes.CreateCommentLike(&models.CommentLike{CommentID: commentID, UserID: userID})
		if err != nil {
			return err
		}
		if created {
			result.Liked = true
			return notify(tx, comment.AuthorID, userID, VerbLikedComment, models.CommentTarget{CommentID: commentID})
		}

		err = likes.DeleteCommentLike(commentID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return models.ToggleResult{}, err
	}
	metrics.LikeToggles.WithLabelValues("comment", string(result.Status())).Inc()
	return result, nil
}

// ToggleSave bookmarks or un-bookmarks a post and reports the new state.
func (s *ContentService) ToggleSave(ctx context.Context, userID uint, postID string) (bool, error) {
	var saved bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadPost(ctx, s.posts(tx), postID); err != nil {
			return err
		}
		repo := repositories.NewPostgresSavedPostRepository(tx)
		created, err := repo.SavePost(&models.SavedPost{UserID: userID, PostID: postID})
		if err != nil {
			return err
		}
		if created {
			saved = true
			return nil
		}
		err = repo.UnsavePost(userID, postID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	})
	return saved, err
}

// ListSaved returns the viewer's bookmarks, most recently saved first.
func (s *ContentService) ListSaved(ctx context.Context, userID uint, page Page) ([]models.EnrichedPost, int64, error) {
	db := s.db.WithContext(ctx)
	ids, total, err := repositories.NewPostgresSavedPostRepository(db).ListSavedPostIDs(userID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}

	repo := s.posts(db)
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := repo.GetPostByID(ctx, id)
		if errors.Is(err, repositories.ErrPostNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}

	enriched, err := enrichPosts(db, userID, posts)
	if err != nil {
		return nil, 0, err
	}
	return enriched, total, nil
}
