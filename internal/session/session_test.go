package session

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMintsToken(t *testing.T) {
	s := New("team-check")
	if _, err := uuid.Parse(s.Token()); err != nil {
		t.Errorf("Expected a UUID token, got %q: %v", s.Token(), err)
	}
	if s.Folder() != "team-check" {
		t.Errorf("Expected folder team-check, got %q", s.Folder())
	}
}

func TestRestore(t *testing.T) {
	original := New("team-check")
	restored, err := Restore("team-check", original.Token())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Token() != original.Token() {
		t.Errorf("Expected token reuse, got %q", restored.Token())
	}

	if _, err := Restore("team-check", "not-a-uuid"); err == nil {
		t.Error("Expected error for an invalid token")
	}
}

func TestSuppression(t *testing.T) {
	s := New("team-check")
	if s.Suppressed() {
		t.Fatal("Expected no suppression initially")
	}
	done := s.BeginRestore()
	if !s.Suppressed() {
		t.Error("Expected suppression during restore")
	}
	done()
	if s.Suppressed() {
		t.Error("Expected suppression cleared after restore")
	}
}
