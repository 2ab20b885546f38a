package storage

import (
	"sync"

	"mowhoob/internal/models"
)

// MemorySlotStore is an in-process SlotStore used by tests and the "memory"
// driver. It stores the serialized blob rather than the decoded list, so a
// Load still exercises the same JSON round-trip as the durable backends.
type MemorySlotStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySlotStore creates an empty in-memory store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{}
}

// Load decodes the stored blob, or reports ErrSlotNotFound before the first Save.
func (s *MemorySlotStore) Load() ([]models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrSlotNotFound
	}
	return decodeSlot(s.data)
}

// Save replaces the stored blob with the full list.
func (s *MemorySlotStore) Save(creators []models.Creator) error {
	data, err := encodeSlot(creators)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// SetRaw overwrites the slot with arbitrary bytes. It exists so tests can
// simulate a corrupted slot.
func (s *MemorySlotStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
