package runjournal

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

const (
	defaultJournalDir   = "./wal/outcomes"
	journalSegmentLimit = 1000
	journalMaxSegments  = 100
	outcomeKeyPrefix    = "file_outcome_"
)

// WALStore persists per-file outcomes of batch runs in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed outcome journal under the provided directory.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultJournalDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "outcome_",
		SegmentThreshold: journalSegmentLimit,
		MaxSegments:      journalMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init outcome WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the outcome to the WAL. Callers must set Exchange and Stock.
func (s *WALStore) Save(outcome domain.FileOutcome) error {
	if s == nil || s.wal == nil {
		return errors.New("outcome journal is not initialized")
	}
	if outcome.Exchange == "" || outcome.Stock == "" {
		return fmt.Errorf("outcome exchange and stock are required")
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		return errors.Wrap(err, "marshal file outcome")
	}

	key := fmt.Sprintf("%s%s/%s", outcomeKeyPrefix, outcome.Exchange, outcome.Stock)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// Outcomes returns every stored outcome in write order.
func (s *WALStore) Outcomes() ([]domain.FileOutcome, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("outcome journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var outcomes []domain.FileOutcome
	for msg := range s.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, outcomeKeyPrefix) {
			continue
		}
		var outcome domain.FileOutcome
		if err := json.Unmarshal(msg.Value, &outcome); err != nil {
			return nil, errors.Wrap(err, "decode file outcome")
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("outcome journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
