package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"mowhoob/internal/models"
)

// DefaultSlotKey is the slot name the original catalog was persisted under.
// Changing it orphans previously written data, so treat it as part of the
// external format.
const DefaultSlotKey = "mowhoob_creators"

// ErrSlotNotFound is returned by Load when the slot has never been written.
var ErrSlotNotFound = errors.New("storage: slot not found")

// SlotStore persists the entire creator list as one serialized blob under a
// single named slot. Save replaces the whole blob on every call; there is no
// incremental append. Callers must treat any Load failure (absent slot or
// undecodable content) as "fall back to the seed set", never as fatal.
type SlotStore interface {
	Load() ([]models.Creator, error)
	Save(creators []models.Creator) error
}

// encodeSlot and decodeSlot define the slot format shared by every backend:
// one JSON array of creator records.

func encodeSlot(creators []models.Creator) ([]byte, error) {
	data, err := json.Marshal(creators)
	if err != nil {
		return nil, fmt.Errorf("failed to encode creator slot: %w", err)
	}
	return data, nil
}

func decodeSlot(data []byte) ([]models.Creator, error) {
	var creators []models.Creator
	if err := json.Unmarshal(data, &creators); err != nil {
		return nil, fmt.Errorf("failed to decode creator slot: %w", err)
	}
	return creators, nil
}
