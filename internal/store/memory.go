package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/gwodu/VoiceDub/internal/types"
)

// Memory is a volatile in-memory Store. Records do not survive a restart;
// no durability is advertised to callers.
type Memory struct {
	mu           sync.Mutex
	translations map[int]types.Translation
	nextID       int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		translations: make(map[int]types.Translation),
		nextID:       1,
	}
}

// Create stores a new record with status pending and returns a copy.
// Ids are monotonic and never reused, including under concurrent calls.
func (m *Memory) Create(insert types.InsertTranslation) *types.Translation {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	t := types.Translation{
		ID:             id,
		OriginalAudio:  insert.OriginalAudio,
		SourceLanguage: insert.SourceLanguage,
		TargetLanguage: insert.TargetLanguage,
		WaveformData:   insert.WaveformData,
		Status:         types.StatusPending,
		CreatedAt:      time.Now(),
	}
	m.translations[id] = t

	out := t
	return &out
}

// Get returns a copy of the record or ErrNotFound.
func (m *Memory) Get(id int) (*types.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.translations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}

// Update merges patch into the stored record. Status may only move
// forward; pending -> processing -> completed/failed.
func (m *Memory) Update(id int, patch types.TranslationPatch) (*types.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.translations[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Status != nil {
		next := types.StatusRank(*patch.Status)
		if next < 0 {
			return nil, fmt.Errorf("unknown status %q", *patch.Status)
		}
		if next < types.StatusRank(t.Status) {
			return nil, fmt.Errorf("status cannot move backward from %s to %s", t.Status, *patch.Status)
		}
		t.Status = *patch.Status
	}
	if patch.TranslatedAudio != nil {
		t.TranslatedAudio = *patch.TranslatedAudio
	}
	if patch.WaveformData != nil {
		t.WaveformData = patch.WaveformData
	}

	m.translations[id] = t

	out := t
	return &out, nil
}
