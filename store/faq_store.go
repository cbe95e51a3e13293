package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/internal/persistence"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// MemoryStore keeps FAQ records in memory and can snapshot them to a gob file.
// It implements services.FAQRepository and services.Persister.
type MemoryStore struct {
	Mu       sync.RWMutex
	Records  map[string]model.FaqRecord // FAQ ID to record
	Sequence map[string]uint64          // FAQ ID to insertion sequence, for stable ordering
	NextSeq  uint64

	snapshotPath string
	now          func() time.Time
}

// gobMemoryStoreData is a helper struct for Gob encoding/decoding MemoryStore data.
// It excludes the mutex.
type gobMemoryStoreData struct {
	Records  map[string]model.FaqRecord
	Sequence map[string]uint64
	NextSeq  uint64
}

// NewMemoryStore creates a store. When snapshotPath is not empty, an existing
// snapshot is loaded and Persist writes back to it.
func NewMemoryStore(snapshotPath string) (*MemoryStore, error) {
	s := &MemoryStore{
		Records:      make(map[string]model.FaqRecord),
		Sequence:     make(map[string]uint64),
		snapshotPath: snapshotPath,
		now:          time.Now,
	}
	if snapshotPath == "" {
		return s, nil
	}

	if err := persistence.LoadGob(snapshotPath, s); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, internalErrors.NewStorageError("load snapshot", err)
	}
	return s, nil
}

// GobEncode implements the gob.GobEncoder interface for MemoryStore.
func (s *MemoryStore) GobEncode() ([]byte, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	var buf bytes.Buffer
	data := gobMemoryStoreData{Records: s.Records, Sequence: s.Sequence, NextSeq: s.NextSeq}
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to gob encode faq store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for MemoryStore.
func (s *MemoryStore) GobDecode(data []byte) error {
	var decoded gobMemoryStoreData
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode faq store data: %w", err)
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	s.Records = decoded.Records
	s.Sequence = decoded.Sequence
	s.NextSeq = decoded.NextSeq

	if s.Records == nil {
		s.Records = make(map[string]model.FaqRecord)
	}
	if s.Sequence == nil {
		s.Sequence = make(map[string]uint64)
	}
	// Records written by older snapshots may lack a sequence number.
	for id := range s.Records {
		if _, ok := s.Sequence[id]; !ok {
			s.Sequence[id] = s.NextSeq
			s.NextSeq++
		}
	}
	return nil
}

// Persist writes a snapshot when the store was created with a snapshot path.
func (s *MemoryStore) Persist() error {
	if s.snapshotPath == "" {
		return nil
	}
	if err := persistence.SaveGob(s.snapshotPath, s); err != nil {
		return internalErrors.NewStorageError("persist snapshot", err)
	}
	return nil
}

// List returns the records matching opts.
func (s *MemoryStore) List(_ context.Context, opts services.ListOptions) ([]model.FaqRecord, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	type entry struct {
		rec model.FaqRecord
		seq uint64
	}
	matched := make([]entry, 0, len(s.Records))
	for id, rec := range s.Records {
		if Matches(rec, opts) {
			matched = append(matched, entry{rec: rec, seq: s.Sequence[id]})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].rec.Priority != matched[j].rec.Priority {
			return matched[i].rec.Priority > matched[j].rec.Priority
		}
		return matched[i].seq < matched[j].seq
	})

	start, end := window(len(matched), opts.Offset, opts.Limit)
	records := make([]model.FaqRecord, 0, end-start)
	for _, e := range matched[start:end] {
		records = append(records, e.rec)
	}
	return records, nil
}

// Count returns how many records match opts, ignoring Offset and Limit.
func (s *MemoryStore) Count(_ context.Context, opts services.ListOptions) (int, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	count := 0
	for _, rec := range s.Records {
		if Matches(rec, opts) {
			count++
		}
	}
	return count, nil
}

// Get returns one record by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (model.FaqRecord, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	rec, ok := s.Records[id]
	if !ok {
		return model.FaqRecord{}, internalErrors.NewFAQNotFoundError(id)
	}
	return rec, nil
}

// Create adds a record, generating an ID when rec.ID is empty.
func (s *MemoryStore) Create(_ context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if _, exists := s.Records[rec.ID]; exists {
		return model.FaqRecord{}, internalErrors.NewFAQAlreadyExistsError(rec.ID)
	}

	now := s.now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.Records[rec.ID] = rec
	s.Sequence[rec.ID] = s.NextSeq
	s.NextSeq++
	return rec, nil
}

// Update replaces an existing record, keeping its creation time and position.
func (s *MemoryStore) Update(_ context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	existing, ok := s.Records[rec.ID]
	if !ok {
		return model.FaqRecord{}, internalErrors.NewFAQNotFoundError(rec.ID)
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = s.now().UTC()
	s.Records[rec.ID] = rec
	return rec, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if _, ok := s.Records[id]; !ok {
		return internalErrors.NewFAQNotFoundError(id)
	}
	delete(s.Records, id)
	delete(s.Sequence, id)
	return nil
}

// Close releases nothing; it exists to satisfy services.FAQRepository.
func (s *MemoryStore) Close() error {
	return nil
}
