package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/geocoder89/enrollhub/internal/identity"
)

func TestLoggerAddsRequesterID(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: "u-42"})
	log.InfoContext(ctx, "profile_read")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if rec["user_id"] != "u-42" {
		t.Fatalf("user_id = %v, want u-42", rec["user_id"])
	}
	if _, ok := rec["trace_id"]; ok {
		t.Fatalf("trace_id must be absent without a span")
	}
}

func TestLoggerLevelByEnv(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "prod").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be off outside dev, got %s", buf.String())
	}

	newLogger(&buf, "dev").Debug("shown")
	if buf.Len() == 0 {
		t.Fatalf("debug must be on in dev")
	}
}
