package repositories

import (
	"fmt"

	"mowhoob/internal/models"
)

// CreatorRepository defines the interface for creator data access.
type CreatorRepository interface {
	List() ([]models.Creator, error)
	GetByID(id string) (*models.Creator, error)
	Create(input models.CreatorInput) (*models.Creator, error)
	Update(id string, patch models.CreatorPatch) (*models.Creator, error)
	Delete(id string) error
}

// NotFoundError reports an operation against an id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("creator with ID %s not found", e.ID)
}

// PersistenceError reports a failed write to the persistence slot. The
// in-memory list is guaranteed untouched when one is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist creators during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
