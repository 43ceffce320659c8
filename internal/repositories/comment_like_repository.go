package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	CreateCommentLike(like *models.CommentLike) (bool, error)
	DeleteCommentLike(commentID, userID uint) error
	CountByCommentIDs(commentIDs []uint) (map[uint]int64, error)
	DeleteByCommentIDs(commentIDs []uint) error
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

// CreateCommentLike reports false when the like already existed.
func (r *postgresCommentLikeRepository) CreateCommentLike(like *models.CommentLike) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *postgresCommentLikeRepository) DeleteCommentLike(commentID, userID uint) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresCommentLikeRepository) CountByCommentIDs(commentIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		CommentID uint
		Count     int64
	}
	err := r.db.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.CommentID] = row.Count
	}
	return result, nil
}

func (r *postgresCommentLikeRepository) DeleteByCommentIDs(commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error
}
