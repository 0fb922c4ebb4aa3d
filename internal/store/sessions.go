package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RevokeSession adds a session's JTI to the revocation list.
func RevokeSession(ctx context.Context, db *sql.DB, jti string, userID int64, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_sessions (jti, user_id, expires_at) VALUES (?, ?, ?)`,
		jti, userID, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = PurgeExpiredSessions(ctx, db, time.Now())

	return nil
}

// IsSessionRevoked checks if a session's JTI has been revoked.
func IsSessionRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_sessions WHERE jti = ?`, jti,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking session revocation: %w", err)
	}
	return count > 0, nil
}

// PurgeExpiredSessions drops revocations of sessions that have expired
// anyway and returns how many were removed.
func PurgeExpiredSessions(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM revoked_sessions WHERE expires_at < ?`, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging revoked sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
