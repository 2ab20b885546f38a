package services

import (
	"log"
	"strings"
	"time"

	"mowhoob/internal/models"
	"mowhoob/internal/repositories"
	"mowhoob/pkg/rabbitmq"
)

// EventPublisher publishes catalog mutation events. *rabbitmq.Client
// satisfies it; tests substitute a mock.
type EventPublisher interface {
	PublishCreatorEvent(event rabbitmq.CreatorEvent) error
}

// CreatorFilter holds the browse-view predicates applied by ListCreators.
// Zero values mean "no constraint".
type CreatorFilter struct {
	Query    string // case-insensitive substring over name, alias and bio
	Niche    string
	Country  string
	City     string
	Platform string // case-insensitive platform name match
	Verified *bool
}

// CreatorService handles business logic related to creators: filtered
// listings for the browse view and CRUD for the admin view, with a catalog
// event published after every successful mutation.
type CreatorService struct {
	repo      repositories.CreatorRepository
	publisher EventPublisher
}

// NewCreatorService creates a new CreatorService. A nil publisher disables
// event publishing.
func NewCreatorService(repo repositories.CreatorRepository, publisher EventPublisher) *CreatorService {
	return &CreatorService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListCreators retrieves creators matching the filter, preserving the
// repository's ordering.
func (s *CreatorService) ListCreators(filter CreatorFilter) ([]models.Creator, error) {
	creators, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	out := make([]models.Creator, 0, len(creators))
	for _, c := range creators {
		if matchesFilter(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Niches returns the distinct niche values across the catalog, in list
// order. The browse view renders these as filter chips.
func (s *CreatorService) Niches() ([]string, error) {
	creators, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	niches := make([]string, 0)
	for _, c := range creators {
		if !seen[c.Niche] {
			seen[c.Niche] = true
			niches = append(niches, c.Niche)
		}
	}
	return niches, nil
}

// GetCreator retrieves a single creator by its ID.
func (s *CreatorService) GetCreator(id string) (*models.Creator, error) {
	return s.repo.GetByID(id)
}

// CreateCreator creates a new creator and publishes a "created" event.
func (s *CreatorService) CreateCreator(input models.CreatorInput) (*models.Creator, error) {
	creator, err := s.repo.Create(input)
	if err != nil {
		return nil, err
	}
	s.publish("created", creator.ID, creator)
	return creator, nil
}

// UpdateCreator applies a partial update and publishes an "updated" event.
func (s *CreatorService) UpdateCreator(id string, patch models.CreatorPatch) (*models.Creator, error) {
	creator, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.publish("updated", creator.ID, creator)
	return creator, nil
}

// DeleteCreator deletes a creator by its ID and publishes a "deleted" event.
// Deleting an unknown ID succeeds without an event payload difference; the
// repository treats it as a no-op.
func (s *CreatorService) DeleteCreator(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", id, nil)
	return nil
}

// publish is fire-and-forget: a broker problem must never fail a catalog
// mutation that already persisted.
func (s *CreatorService) publish(action, id string, creator *models.Creator) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.CreatorEvent{
		Action:     action,
		CreatorID:  id,
		Creator:    creator,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishCreatorEvent(event); err != nil {
		log.Printf("Failed to publish creator %s event for %s: %v", action, id, err)
	}
}

func matchesFilter(c models.Creator, f CreatorFilter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!containsLower(c.Alias, q) &&
			!containsLower(c.Bio, q) {
			return false
		}
	}
	if f.Niche != "" && c.Niche != f.Niche {
		return false
	}
	if f.Country != "" && c.Country != f.Country {
		return false
	}
	if f.City != "" && c.City != f.City {
		return false
	}
	if f.Platform != "" && !hasPlatform(c.Platforms, f.Platform) {
		return false
	}
	if f.Verified != nil && c.IsVerified != *f.Verified {
		return false
	}
	return true
}

func containsLower(s *string, q string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), q)
}

func hasPlatform(platforms []models.Platform, name string) bool {
	for _, p := range platforms {
		if strings.EqualFold(p.Platform, name) {
			return true
		}
	}
	return false
}
