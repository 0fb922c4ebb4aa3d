package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/konzola/internal/db"
)

func TestRevokeAndCheckSession(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Session should not be revoked initially.
	revoked, err := IsSessionRevoked(ctx, database, "test-jti-1")
	if err != nil {
		t.Fatalf("IsSessionRevoked: %v", err)
	}
	if revoked {
		t.Error("expected session not to be revoked")
	}

	if err := RevokeSession(ctx, database, "test-jti-1", 1, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}

	revoked, err = IsSessionRevoked(ctx, database, "test-jti-1")
	if err != nil {
		t.Fatalf("IsSessionRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected session to be revoked")
	}

	// Different JTI should not be revoked.
	revoked, err = IsSessionRevoked(ctx, database, "test-jti-2")
	if err != nil {
		t.Fatalf("IsSessionRevoked: %v", err)
	}
	if revoked {
		t.Error("expected different session not to be revoked")
	}
}

func TestRevokeSessionIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Revoking the same session twice should not error (INSERT OR IGNORE).
	for i := 0; i < 2; i++ {
		if err := RevokeSession(ctx, database, "test-jti-1", 1, time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("RevokeSession #%d: %v", i+1, err)
		}
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	if err := RevokeSession(ctx, database, "live", 1, now.Add(time.Hour)); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if _, err := database.ExecContext(ctx,
		`INSERT INTO revoked_sessions (jti, user_id, expires_at) VALUES ('old', 1, ?)`,
		now.Add(-time.Hour).UTC(),
	); err != nil {
		t.Fatalf("inserting expired revocation: %v", err)
	}

	n, err := PurgeExpiredSessions(ctx, database, now)
	if err != nil {
		t.Fatalf("PurgeExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}
	if revoked, _ := IsSessionRevoked(ctx, database, "live"); !revoked {
		t.Error("live revocation should be kept")
	}
}
