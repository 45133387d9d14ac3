package requestid

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	id := New()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if New() == id {
		t.Error("expected unique IDs")
	}
}

func TestFromHeader(t *testing.T) {
	t.Run("keeps valid id in canonical form", func(t *testing.T) {
		in := "0190F0A6-6F2B-7C3D-8E4F-1234567890AB"
		got := FromHeader(in)
		if got != "0190f0a6-6f2b-7c3d-8e4f-1234567890ab" {
			t.Errorf("unexpected id %q", got)
		}
	})

	t.Run("replaces invalid id", func(t *testing.T) {
		got := FromHeader("<script>alert(1)</script>")
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("expected generated UUID, got %q", got)
		}
	})

	t.Run("generates when empty", func(t *testing.T) {
		if _, err := uuid.Parse(FromHeader("")); err != nil {
			t.Error("expected generated UUID")
		}
	})
}
