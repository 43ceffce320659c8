package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	user, err := users.Register(ctx, models.RegisterRequest{Username: "alice", Email: "Alice@Example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "correct-horse" || user.Email != "alice@example.com" {
		t.Fatalf("expected hashed password and normalised email, got %+v", user)
	}

	_, err = users.Register(ctx, models.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "correct-horse"})
	if errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected Validation for taken username, got %v", err)
	}

	if got, err := users.Authenticate(ctx, "alice", "correct-horse"); err != nil || got.ID != user.ID {
		t.Fatalf("login by username: %v", err)
	}
	if got, err := users.Authenticate(ctx, "alice@example.com", "correct-horse"); err != nil || got.ID != user.ID {
		t.Fatalf("login by email: %v", err)
	}
	if _, err := users.Authenticate(ctx, "alice", "wrong"); errs.KindOf(err) != errs.Permission {
		t.Fatalf("expected Permission for bad password, got %v", err)
	}
	if _, err := users.Authenticate(ctx, "nobody", "whatever"); errs.KindOf(err) != errs.Permission {
		t.Fatalf("expected Permission for unknown user, got %v", err)
	}
}

func TestLinkFirebaseUser(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserService(db)
	ctx := context.Background()
	existing := testutil.CreateUser(t, db, "bob")

	linked, err := users.LinkFirebaseUser(ctx, "uid-bob", "bob@example.com", "Bob")
	if err != nil {
		t.Fatalf("link by email: %v", err)
	}
	if linked.ID != existing.ID || linked.FirebaseUID == nil || *linked.FirebaseUID != "uid-bob" {
		t.Fatalf("expected existing user linked, got %+v", linked)
	}

	again, err := users.LinkFirebaseUser(ctx, "uid-bob", "", "")
	if err != nil || again.ID != existing.ID {
		t.Fatalf("lookup by uid: %+v %v", again, err)
	}

	created, err := users.LinkFirebaseUser(ctx, "uid-new", "new.person@example.com", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != "newperson" {
		t.Fatalf("expected username derived from email, got %q", created.Username)
	}

	clash, err := users.LinkFirebaseUser(ctx, "uid2", "newperson@other.com", "")
	if err != nil {
		t.Fatalf("create with clash: %v", err)
	}
	if clash.Username != "newpersonuid2" {
		t.Fatalf("expected uid suffix on clash, got %q", clash.Username)
	}
}

func TestUpdateProfileAndSearch(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserService(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "bob")

	updated, err := users.UpdateProfile(ctx, a.ID, models.UpdateUserRequest{Bio: "hello"})
	if err != nil || updated.Bio != "hello" {
		t.Fatalf("update: %+v %v", updated, err)
	}
	if _, err := users.UpdateProfile(ctx, a.ID, models.UpdateUserRequest{Email: "bob@example.com"}); errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected Validation for taken email, got %v", err)
	}
	if _, err := users.GetUser(ctx, 999); errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	found, err := users.SearchUsers(ctx, "ALI")
	if err != nil || len(found) != 1 || found[0].ID != a.ID {
		t.Fatalf("search: %+v %v", found, err)
	}
	if _, err := users.SearchUsers(ctx, "  "); errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected Validation for blank query, got %v", err)
	}
}
