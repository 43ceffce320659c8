package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
)

func TestNotifySelfIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	svc := NewNotificationService(db)

	if err := svc.Notify(context.Background(), a.ID, a.ID, "liked your post", models.PostTarget{PostID: "p1"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no notification, got %d", count)
	}
}

func TestNotifyCreatesUnread(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	svc := NewNotificationService(db)
	ctx := context.Background()

	if err := svc.Notify(ctx, a.ID, b.ID, "liked your post", models.PostTarget{PostID: "p1"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	unread, err := svc.UnreadCount(ctx, a.ID)
	if err != nil || unread != 1 {
		t.Fatalf("expected 1 unread, got %d %v", unread, err)
	}
}

func TestListMarksRead(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	svc := NewNotificationService(db)
	ctx := context.Background()

	svc.Notify(ctx, a.ID, b.ID, "liked your post", models.PostTarget{PostID: "p1"})
	svc.Notify(ctx, a.ID, b.ID, "liked your comment", models.CommentTarget{CommentID: 3})

	first, err := svc.List(ctx, a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(first))
	}
	for _, n := range first {
		if n.IsRead {
			t.Fatalf("first listing must show unread, got %+v", n)
		}
	}
	if first[0].Verb != "liked your comment" || first[0].Target.Type != models.TargetComment || first[0].Target.ID != "3" {
		t.Fatalf("expected newest first with comment target, got %+v", first[0])
	}

	second, _ := svc.List(ctx, a.ID)
	for _, n := range second {
		if !n.IsRead {
			t.Fatalf("second listing must show read, got %+v", n)
		}
	}
	if unread, _ := svc.UnreadCount(ctx, a.ID); unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}
