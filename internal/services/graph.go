package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GraphService maintains the directed follow relation.
type GraphService struct {
	db *gorm.DB
}

func NewGraphService(db *gorm.DB) *GraphService {
	return &GraphService{db: db}
}

// Follow makes followerID follow followeeID, bumps both counters and
// notifies the followee, all in one transaction.
func (s *GraphService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return errs.ErrSelfFollow
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		if _, err := users.GetUserByID(followeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.NotFound, "user %d not found", followeeID)
			}
			return err
		}

		created, err := repositories.NewPostgresFollowRepository(tx).CreateFollow(&models.Follow{
			FollowerID:  followerID,
			FollowingID: followeeID,
		})
		if err != nil {
			return err
		}
		if !created {
			return errs.ErrAlreadyFollowing
		}

		if err := users.AdjustFollowCounts(followerID, followeeID, 1); err != nil {
			return err
		}
		return notify(tx, followeeID, followerID, VerbFollowed, models.UserTarget{UserID: followerID})
	})
	if err != nil {
		return err
	}

	metrics.FollowEvents.WithLabelValues("follow").Inc()
	logrus.WithFields(logrus.Fields{"follower": followerID, "followee": followeeID}).Debug("follow created")
	return nil
}

// Unfollow removes the edge and decrements both counters.
func (s *GraphService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return errs.ErrSelfFollow
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := repositories.NewPostgresFollowRepository(tx).DeleteFollow(followerID, followeeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFollowing
		}
		if err != nil {
			return err
		}
		return repositories.NewPostgresUserRepository(tx).AdjustFollowCounts(followerID, followeeID, -1)
	})
	if err != nil {
		return err
	}

	metrics.FollowEvents.WithLabelValues("unfollow").Inc()
	logrus.WithFields(logrus.Fields{"follower": followerID, "followee": followeeID}).Debug("follow removed")
	return nil
}

// ListFollowing returns the users userID follows, ordered by id.
func (s *GraphService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}
	return repositories.NewPostgresFollowRepository(db).GetFollowing(userID)
}

// ListFollowers returns the users following userID, ordered by id.
func (s *GraphService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}
	return repositories.NewPostgresFollowRepository(db).GetFollowers(userID)
}

// IsFollowing reports whether followerID follows followeeID.
func (s *GraphService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).IsFollowing(followerID, followeeID)
}

func ensureUser(db *gorm.DB, userID uint) error {
	_, err := repositories.NewPostgresUserRepository(db).GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Errorf(errs.NotFound, "user %d not found", userID)
	}
	return err
}
