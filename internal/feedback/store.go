// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/validation"
)

const keyPrefix = "feedback/"

// keyTimeFormat is RFC 3339 with fixed-width nanoseconds so keys sort
// chronologically.
const keyTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrClosed is returned after Close.
var ErrClosed = errors.New("feedback store is closed")

// Store persists feedback.
type Store struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// Open opens (or creates) the store at path. An empty path keeps data in
// memory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().Str("path", path).Bool("in_memory", path == "").Msg("Feedback store opened")
	return &Store{db: db, now: time.Now}, nil
}

// Save validates fb, assigns an id and timestamp and persists it.
func (s *Store) Save(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return models.Feedback{}, err
	}
	if verr := validation.ValidateStruct(&fb); verr != nil {
		metrics.FeedbackSubmissions.WithLabelValues("invalid").Inc()
		return models.Feedback{}, verr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return models.Feedback{}, ErrClosed
	}

	fb.ID = uuid.New().String()
	fb.CreatedAt = s.now().UTC()

	data, err := json.Marshal(fb)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("marshal feedback: %w", err)
	}
	key := []byte(keyPrefix + fb.CreatedAt.Format(keyTimeFormat) + "/" + fb.ID)

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data))
	}); err != nil {
		metrics.FeedbackSubmissions.WithLabelValues("error").Inc()
		return models.Feedback{}, fmt.Errorf("write feedback: %w", err)
	}

	metrics.FeedbackSubmissions.WithLabelValues("stored").Inc()
	logging.Ctx(ctx).Info().Str("feedback_id", fb.ID).Msg("Feedback stored")
	return fb, nil
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
