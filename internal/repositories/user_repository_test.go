package repositories

import (
	"testing"

	"github.com/anonto42/nano-social/backend/internal/testutil"
)

func TestAdjustFollowCounts(t *testing.T) {
	db := testutil.NewDB(t)
	ada := testutil.CreateUser(t, db, "ada")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewPostgresUserRepository(db)

	if err := repo.AdjustFollowCounts(ada.ID, bob.ID, 1); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	a, _ := repo.GetUserByID(ada.ID)
	b, _ := repo.GetUserByID(bob.ID)
	if a.FollowingCount != 1 || a.FollowersCount != 0 {
		t.Fatalf("unexpected ada counts %+v", a)
	}
	if b.FollowersCount != 1 || b.FollowingCount != 0 {
		t.Fatalf("unexpected bob counts %+v", b)
	}

	if err := repo.AdjustFollowCounts(ada.ID, bob.ID, -1); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	b, _ = repo.GetUserByID(bob.ID)
	if b.FollowersCount != 0 {
		t.Fatalf("expected follower count back to 0, got %d", b.FollowersCount)
	}
}

func TestSearchAndLookupUsers(t *testing.T) {
	db := testutil.NewDB(t)
	ada := testutil.CreateUser(t, db, "ada")
	testutil.CreateUser(t, db, "adam")
	testutil.CreateUser(t, db, "bob")
	repo := NewPostgresUserRepository(db)

	users, err := repo.SearchUsers("AD")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(users))
	}

	byEmail, err := repo.GetUserByEmail("ada@example.com")
	if err != nil || byEmail.ID != ada.ID {
		t.Fatalf("lookup by email: %+v %v", byEmail, err)
	}
	if _, err := repo.GetUserByUsername("nobody"); err == nil {
		t.Fatalf("expected error for unknown username")
	}

	byID, err := repo.GetUsersByIDs([]uint{ada.ID, 999})
	if err != nil {
		t.Fatalf("by ids: %v", err)
	}
	if len(byID) != 1 || byID[ada.ID].Username != "ada" {
		t.Fatalf("unexpected map %+v", byID)
	}
}

func TestSearchUsersIsLiteral(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "ann_lee")
	testutil.CreateUser(t, db, "annlee")
	repo := NewPostgresUserRepository(db)

	users, err := repo.SearchUsers("_")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(users) != 1 || users[0].Username != "ann_lee" {
		t.Fatalf("expected only ann_lee, got %+v", users)
	}
	if users, _ := repo.SearchUsers("%"); len(users) != 0 {
		t.Fatalf("expected no match for %%, got %+v", users)
	}

	ids, err := repo.SearchUserIDsByUsername("n_l")
	if err != nil {
		t.Fatalf("search ids: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected one literal match, got %v", ids)
	}
}
