package validators

import (
	"strings"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	err := v.Validate(models.RegisterRequest{Username: "a!", Email: "nope", Password: "short"})
	if errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected validation kind, got %v", err)
	}
	msg := errs.Message(err)
	for _, want := range []string{"username", "email must be a valid email address", "password must be at least 8"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateCommentLength(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(models.CommentRequest{Content: strings.Repeat("x", 501)}); err == nil {
		t.Fatalf("expected max length failure")
	}
	if err := v.Validate(models.CommentRequest{}); !strings.Contains(errs.Message(err), "content is required") {
		t.Fatalf("unexpected message %q", errs.Message(err))
	}
}
