// Package session persists the authenticated Monarch Money session between
// server runs. A token supplied through the MONARCH_TOKEN environment
// variable always wins over the persistent store.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/monarchmcp/monarch-mcp-server/internal/types"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// TokenEnvVar is the environment variable holding a pre-issued token.
const TokenEnvVar = "MONARCH_TOKEN"

var sessionBucketName = []byte("session")

var sessionKey = []byte("current")

// ErrNoSession is returned when no session has been stored.
var ErrNoSession = errors.New("no stored session")

// legacyArtifacts are plaintext session files written by earlier versions of
// the server. They are removed whenever the store is written to.
var legacyArtifacts = []string{
	filepath.Join(".mm", "mm_session.pickle"),
	"monarch_session.json",
	".mm",
}

// Store is a bbolt-backed session store.
type Store struct {
	db     *bolt.DB
	path   string
	logger types.Logger
}

// Open opens (creating if needed) the session database at path.
func Open(path string, logger types.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrap(err, "failed to create session directory")
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session store")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create session bucket")
	}

	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the session and removes legacy plaintext artifacts.
func (s *Store) Save(session *types.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session has no token to save")
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucketName).Put(sessionKey, raw)
	})
	if err != nil {
		return errors.Wrap(err, "failed to write session")
	}

	if s.logger != nil {
		s.logger.Info("Session saved", "path", s.path, "email", session.Email)
	}

	s.cleanupLegacyArtifacts()

	return nil
}

// Load returns the stored session. An expired session is treated as absent
// and removed from the store.
func (s *Store) Load() (*types.Session, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucketName).Get(sessionKey)
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	if raw == nil {
		return nil, ErrNoSession
	}

	var session types.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		if s.logger != nil {
			s.logger.Warn("Stored session expired, discarding", "email", session.Email)
		}
		_ = s.Delete()
		return nil, types.ErrSessionExpired
	}

	if s.logger != nil {
		s.logger.Info("Session loaded", "path", s.path, "email", session.Email)
	}

	return &session, nil
}

// Delete removes the stored session and legacy plaintext artifacts.
func (s *Store) Delete() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucketName).Delete(sessionKey)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	s.cleanupLegacyArtifacts()

	return nil
}

// Resolve returns the session to use, preferring a token from the
// environment over the persistent store.
func (s *Store) Resolve() (*types.Session, error) {
	if token := os.Getenv(TokenEnvVar); token != "" {
		if s.logger != nil {
			s.logger.Info("Token loaded from environment variable")
		}
		return &types.Session{Token: token}, nil
	}

	return s.Load()
}

// cleanupLegacyArtifacts removes plaintext session files from earlier
// versions. Directories are only removed when empty.
func (s *Store) cleanupLegacyArtifacts() {
	for _, path := range legacyArtifacts {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil || len(entries) > 0 {
				continue
			}
			if err := os.Remove(path); err == nil && s.logger != nil {
				s.logger.Info("Cleaned up empty session directory", "path", path)
			}
			continue
		}

		if err := os.Remove(path); err != nil {
			if s.logger != nil {
				s.logger.Warn("Could not clean up legacy session file", "path", path, "error", err)
			}
			continue
		}
		if s.logger != nil {
			s.logger.Info("Cleaned up legacy session file", "path", path)
		}
	}
}
