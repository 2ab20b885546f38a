package repositories

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mowhoob/internal/models"
	"mowhoob/internal/storage"
)

// SlotCreatorRepository owns the authoritative in-memory creator list for
// the lifetime of the process and mediates every read and write against a
// storage.SlotStore. Every mutation replaces the in-memory list and rewrites
// the whole slot; the list is only committed after the write succeeds, so
// memory and durable state cannot drift apart.
//
// The mutex guards the read-modify-persist sequence: the HTTP server calls
// in from many goroutines, and interleaving two of those sequences would
// lose one of the writes.
type SlotCreatorRepository struct {
	store    storage.SlotStore
	mu       sync.RWMutex
	creators []models.Creator
	seeded   bool
}

// NewSlotCreatorRepository loads the slot and returns a ready repository.
//
// A missing or unreadable slot is not an error: the repository adopts the
// given seed set, persists it, and carries on. Only a failure to persist the
// seed itself is surfaced. Bootstrap completes before this returns, so
// callers never observe a loading state.
func NewSlotCreatorRepository(store storage.SlotStore, seedSet []models.Creator) (*SlotCreatorRepository, error) {
	r := &SlotCreatorRepository{store: store}

	creators, err := store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrSlotNotFound) {
			// Corrupted slot. Favor availability: recover with the seed
			// set rather than refusing to start.
			log.Printf("creator slot unreadable, falling back to seed set: %v", err)
		}
		r.creators = seedSet
		r.seeded = true
		if err := store.Save(seedSet); err != nil {
			return nil, &PersistenceError{Op: "bootstrap", Err: err}
		}
		return r, nil
	}
	r.creators = creators
	return r, nil
}

// Seeded reports whether bootstrap fell back to the bundled seed set.
func (r *SlotCreatorRepository) Seeded() bool {
	return r.seeded
}

// List returns the current list in its current order (newest created first;
// updates do not reorder). The returned slice and records are copies.
func (r *SlotCreatorRepository) List() ([]models.Creator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Creator, len(r.creators))
	for i, c := range r.creators {
		out[i] = c.Clone()
	}
	return out, nil
}

// GetByID returns a copy of the record with the given id.
func (r *SlotCreatorRepository) GetByID(id string) (*models.Creator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.creators {
		if c.ID == id {
			out := c.Clone()
			return &out, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Create assigns a fresh id and creation timestamp, prepends the new record
// (newest first), persists the full list, and returns the created record.
func (r *SlotCreatorRepository) Create(input models.CreatorInput) (*models.Creator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creator := models.Creator{
		ID:              uuid.New().String(),
		Name:            input.Name,
		Alias:           input.Alias,
		Bio:             input.Bio,
		Country:         input.Country,
		City:            input.City,
		Niche:           input.Niche,
		Platforms:       input.Platforms,
		AvatarURL:       input.AvatarURL,
		SampleVideos:    input.SampleVideos,
		VoiceSampleURL:  input.VoiceSampleURL,
		IsVerified:      input.IsVerified,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		VideoThumbnails: input.VideoThumbnails,
	}
	creator = creator.Clone()
	if creator.VideoThumbnails == nil {
		creator.VideoThumbnails = models.VideoThumbnails{}
	}
	if creator.SampleVideos == nil {
		creator.SampleVideos = []string{}
	}
	if creator.Platforms == nil {
		creator.Platforms = []models.Platform{}
	}

	next := make([]models.Creator, 0, len(r.creators)+1)
	next = append(next, creator)
	next = append(next, r.creators...)

	if err := r.store.Save(next); err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	r.creators = next

	out := creator.Clone()
	return &out, nil
}

// Update merges the patch into the record with the given id and persists the
// full list. Supplying an unknown id is a caller error. The record's id and
// created_at survive any patch by construction of CreatorPatch.
func (r *SlotCreatorRepository) Update(id string, patch models.CreatorPatch) (*models.Creator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, c := range r.creators {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{ID: id}
	}

	next := make([]models.Creator, len(r.creators))
	for i, c := range r.creators {
		next[i] = c.Clone()
	}
	patch.ApplyTo(&next[idx])

	if err := r.store.Save(next); err != nil {
		return nil, &PersistenceError{Op: "update", Err: err}
	}
	r.creators = next

	out := next[idx].Clone()
	return &out, nil
}

// Delete removes the record with the given id if present and persists the
// full list. Deleting an id that does not exist is a no-op, not an error.
func (r *SlotCreatorRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Creator, 0, len(r.creators))
	for _, c := range r.creators {
		if c.ID != id {
			next = append(next, c)
		}
	}

	if err := r.store.Save(next); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	r.creators = next
	return nil
}
