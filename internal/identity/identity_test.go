package identity_test

import (
	"context"
	"testing"

	"github.com/geocoder89/enrollhub/internal/identity"
)

func TestFromContext(t *testing.T) {
	if _, ok := identity.FromContext(context.Background()); ok {
		t.Fatalf("expected no identity on a bare context")
	}

	ctx := identity.WithIdentity(context.Background(), identity.Identity{})
	if _, ok := identity.FromContext(ctx); ok {
		t.Fatalf("an identity without an id must not count as authenticated")
	}

	want := identity.Identity{ID: "u-1", Email: "a@x.com", Role: "user"}
	ctx = identity.WithIdentity(context.Background(), want)

	got, ok := identity.FromContext(ctx)
	if !ok {
		t.Fatalf("expected identity to be present")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		name   string
		who    identity.Identity
		target string
		want   bool
	}{
		{"owner", identity.Identity{ID: "u-1", Role: "user"}, "u-1", true},
		{"other user", identity.Identity{ID: "u-1", Role: "user"}, "u-2", false},
		{"admin", identity.Identity{ID: "a-1", Role: "admin"}, "u-2", true},
		{"anonymous", identity.Identity{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.who.CanManage(tt.target); got != tt.want {
				t.Fatalf("CanManage(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
