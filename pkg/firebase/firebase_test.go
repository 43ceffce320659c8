package firebase

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitFirebaseRequiresCredentials(t *testing.T) {
	if _, err := InitFirebase(context.Background(), ""); err == nil || !strings.Contains(err.Error(), "not provided") {
		t.Fatalf("empty path: got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "creds.json")
	if _, err := InitFirebase(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("missing file: got %v", err)
	}
}
