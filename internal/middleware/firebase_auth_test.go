package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
)

type stubVerifier struct {
	tokens map[string]*auth.Token
}

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := s.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}

type stubResolver struct {
	gotUID, gotEmail string
}

func (s *stubResolver) LinkFirebaseUser(_ context.Context, uid, email, _ string) (*models.User, error) {
	s.gotUID, s.gotEmail = uid, email
	if uid == "broken" {
		return nil, errors.New("db down")
	}
	return &models.User{ID: 9, Email: email}, nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	verifier := stubVerifier{tokens: map[string]*auth.Token{
		"good":   {UID: "uid-1", Claims: map[string]interface{}{"email": "fb@example.com", "name": "Fire Base"}},
		"orphan": {UID: "broken", Claims: map[string]interface{}{}},
	}}
	resolver := &stubResolver{}
	e := newProtectedEcho(FirebaseAuthMiddleware(verifier, resolver))

	rec := doGet(e, "Bearer good")
	if rec.Code != http.StatusOK || rec.Body.String() != "9" {
		t.Fatalf("expected 200/9, got %d %q", rec.Code, rec.Body.String())
	}
	if resolver.gotUID != "uid-1" || resolver.gotEmail != "fb@example.com" {
		t.Fatalf("unexpected resolver input %+v", resolver)
	}

	if rec := doGet(e, "Bearer bad"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unverifiable token, got %d", rec.Code)
	}
	if rec := doGet(e, "Bearer orphan"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when user cannot be resolved, got %d", rec.Code)
	}
}

func TestFirebaseIdentity(t *testing.T) {
	email, name := FirebaseIdentity(&auth.Token{Claims: map[string]interface{}{"email": 5}})
	if email != "" || name != "" {
		t.Fatalf("expected empty identity for malformed claims, got %q %q", email, name)
	}
}
