package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Setting keys.
const (
	settingJWTSecret = "jwt_secret"
	settingSealKey   = "seal_key"
)

// GetJWTSecret retrieves the session signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	return getOrCreateSecret(ctx, db, settingJWTSecret)
}

// GetSealKey retrieves the key that seals backend tokens inside sessions,
// creating it on first use.
func GetSealKey(ctx context.Context, db *sql.DB) (*[32]byte, error) {
	encoded, err := getOrCreateSecret(ctx, db, settingSealKey)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("stored %s is malformed", settingSealKey)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

// getOrCreateSecret returns the hex secret stored under key. It uses
// INSERT OR IGNORE + re-SELECT to avoid a TOCTOU race on concurrent startup.
func getOrCreateSecret(ctx context.Context, db *sql.DB, key string) (string, error) {
	// Try to generate and insert first (safe against races).
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		key, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", key, err)
	}

	return secret, nil
}
