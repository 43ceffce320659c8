package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
)

func TestFollowThenListFollowing(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	graph := NewGraphService(db)
	ctx := context.Background()

	if err := graph.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	following, err := graph.ListFollowing(ctx, a.ID)
	if err != nil {
		t.Fatalf("list following: %v", err)
	}
	if len(following) != 1 || following[0].ID != b.ID {
		t.Fatalf("expected [bob], got %+v", following)
	}
	followers, _ := graph.ListFollowers(ctx, b.ID)
	if len(followers) != 1 || followers[0].ID != a.ID {
		t.Fatalf("expected [alice] as followers, got %+v", followers)
	}

	if err := graph.Follow(ctx, a.ID, b.ID); !errors.Is(err, errs.ErrAlreadyFollowing) {
		t.Fatalf("expected AlreadyFollowing, got %v", err)
	}
	var edges int64
	db.Model(&models.Follow{}).Count(&edges)
	if edges != 1 {
		t.Fatalf("expected a single edge, got %d", edges)
	}

	var alice, bob models.User
	db.First(&alice, a.ID)
	db.First(&bob, b.ID)
	if alice.FollowingCount != 1 || bob.FollowersCount != 1 {
		t.Fatalf("unexpected counters following=%d followers=%d", alice.FollowingCount, bob.FollowersCount)
	}
}

func TestFollowSelf(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	graph := NewGraphService(db)

	err := graph.Follow(context.Background(), a.ID, a.ID)
	if errs.KindOf(err) != errs.SelfFollow {
		t.Fatalf("expected SelfFollow, got %v", err)
	}
	if err := graph.Unfollow(context.Background(), a.ID, a.ID); !errors.Is(err, errs.ErrSelfFollow) {
		t.Fatalf("expected SelfFollow on unfollow, got %v", err)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	graph := NewGraphService(db)

	if err := graph.Follow(context.Background(), a.ID, 999); errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := graph.ListFollowing(context.Background(), 999); errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NotFound listing unknown user, got %v", err)
	}
}

func TestUnfollow(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	graph := NewGraphService(db)
	ctx := context.Background()

	if err := graph.Unfollow(ctx, a.ID, b.ID); !errors.Is(err, errs.ErrNotFollowing) {
		t.Fatalf("expected NotFollowing, got %v", err)
	}

	if err := graph.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := graph.Unfollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	following, _ := graph.ListFollowing(ctx, a.ID)
	if len(following) != 0 {
		t.Fatalf("expected no following, got %+v", following)
	}
	ok, _ := graph.IsFollowing(ctx, a.ID, b.ID)
	if ok {
		t.Fatalf("edge should be gone")
	}

	var bob models.User
	db.First(&bob, b.ID)
	if bob.FollowersCount != 0 {
		t.Fatalf("expected follower count 0, got %d", bob.FollowersCount)
	}
}

func TestFollowNotifiesFollowee(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	ctx := context.Background()

	if err := NewGraphService(db).Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	list, err := NewNotificationService(db).List(ctx, b.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one notification, got %d", len(list))
	}
	n := list[0]
	if n.Verb != VerbFollowed || n.ActorID != a.ID || n.Actor.Username != "alice" {
		t.Fatalf("unexpected notification %+v", n)
	}
	target, err := n.Notification.Target()
	if err != nil || target != (models.UserTarget{UserID: a.ID}) {
		t.Fatalf("unexpected target %v %v", target, err)
	}
}
