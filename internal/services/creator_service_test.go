package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mowhoob/internal/models"
	"mowhoob/internal/repositories"
	"mowhoob/internal/services"
	"mowhoob/pkg/rabbitmq"
)

// MockCreatorRepository is a mock implementation of repositories.CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) List() ([]models.Creator, error) {
	args := m.Called()
	return args.Get(0).([]models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetByID(id string) (*models.Creator, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Create(input models.CreatorInput) (*models.Creator, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Update(id string, patch models.CreatorPatch) (*models.Creator, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCreatorEvent(event rabbitmq.CreatorEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

func catalogFixture() []models.Creator {
	return []models.Creator{
		{
			ID:    "1",
			Name:  "RABAH G",
			Alias: strPtr("RABAH.G"),
			Bio:   strPtr("Jeune talent avec beaucoup d'energie."),
			Country:    "Algeria",
			City:       "Algiers",
			Niche:      "Travel & Lifestyle",
			Platforms:  []models.Platform{{Platform: "TikTok", Followers: 15000}},
			IsVerified: true,
		},
		{
			ID:         "2",
			Name:       "MANEL L",
			Bio:        strPtr("Educational tips and daily routine."),
			Country:    "Algeria",
			City:       "Oran",
			Niche:      "Education",
			Platforms:  []models.Platform{{Platform: "Instagram", Followers: 5400}},
			IsVerified: false,
		},
		{
			ID:         "3",
			Name:       "KARIM S",
			Country:    "Algeria",
			City:       "Algiers",
			Niche:      "Education",
			Platforms:  []models.Platform{{Platform: "Instagram", Followers: 2300}},
			IsVerified: false,
		},
	}
}

func TestCreatorService_ListCreators_NoFilter(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	service := services.NewCreatorService(mockRepo, nil)

	mockRepo.On("List").Return(catalogFixture(), nil).Once()

	creators, err := service.ListCreators(services.CreatorFilter{})
	assert.NoError(t, err)
	assert.Len(t, creators, 3)
	// Repository order is preserved.
	assert.Equal(t, "RABAH G", creators[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestCreatorService_ListCreators_QueryMatchesNameAliasBio(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	service := services.NewCreatorService(mockRepo, nil)

	mockRepo.On("List").Return(catalogFixture(), nil).Times(3)

	// Case-insensitive substring on name.
	creators, err := service.ListCreators(services.CreatorFilter{Query: "karim"})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "KARIM S", creators[0].Name)

	// Match through the alias.
	creators, err = service.ListCreators(services.CreatorFilter{Query: "rabah.g"})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "RABAH G", creators[0].Name)

	// Match through the bio; records with a null bio must not panic.
	creators, err = service.ListCreators(services.CreatorFilter{Query: "educational"})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "MANEL L", creators[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestCreatorService_ListCreators_FieldFilters(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	service := services.NewCreatorService(mockRepo, nil)

	mockRepo.On("List").Return(catalogFixture(), nil).Times(4)

	creators, err := service.ListCreators(services.CreatorFilter{Niche: "Education"})
	assert.NoError(t, err)
	assert.Len(t, creators, 2)

	creators, err = service.ListCreators(services.CreatorFilter{City: "Oran"})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "MANEL L", creators[0].Name)

	// Platform name matching is case-insensitive.
	creators, err = service.ListCreators(services.CreatorFilter{Platform: "tiktok"})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "RABAH G", creators[0].Name)

	verified := true
	creators, err = service.ListCreators(services.CreatorFilter{Verified: &verified})
	assert.NoError(t, err)
	assert.Len(t, creators, 1)
	assert.Equal(t, "RABAH G", creators[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestCreatorService_Niches(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	service := services.NewCreatorService(mockRepo, nil)

	mockRepo.On("List").Return(catalogFixture(), nil).Once()

	niches, err := service.Niches()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Travel & Lifestyle", "Education"}, niches)
	mockRepo.AssertExpectations(t)
}

func TestCreatorService_CreateCreator_PublishesEvent(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewCreatorService(mockRepo, mockPublisher)

	input := models.CreatorInput{Name: "New Creator", Country: "Algeria", City: "Algiers", Niche: "Tech"}
	created := &models.Creator{ID: "new-id", Name: "New Creator"}

	mockRepo.On("Create", input).Return(created, nil).Once()
	mockPublisher.On("PublishCreatorEvent", mock.MatchedBy(func(e rabbitmq.CreatorEvent) bool {
		return e.Action == "created" && e.CreatorID == "new-id" && e.Creator != nil
	})).Return(nil).Once()

	creator, err := service.CreateCreator(input)
	assert.NoError(t, err)
	assert.Equal(t, created, creator)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCreatorService_UpdateCreator_NotFoundSkipsEvent(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewCreatorService(mockRepo, mockPublisher)

	patch := models.CreatorPatch{Name: strPtr("X")}
	mockRepo.On("Update", "missing", patch).Return(nil, &repositories.NotFoundError{ID: "missing"}).Once()

	_, err := service.UpdateCreator("missing", patch)
	assert.Error(t, err)
	var notFound *repositories.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertNotCalled(t, "PublishCreatorEvent", mock.Anything)
}

func TestCreatorService_DeleteCreator_PublishesDeletedEvent(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewCreatorService(mockRepo, mockPublisher)

	mockRepo.On("Delete", "1").Return(nil).Once()
	mockPublisher.On("PublishCreatorEvent", mock.MatchedBy(func(e rabbitmq.CreatorEvent) bool {
		return e.Action == "deleted" && e.CreatorID == "1" && e.Creator == nil
	})).Return(nil).Once()

	err := service.DeleteCreator("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCreatorService_PublishFailureDoesNotFailMutation(t *testing.T) {
	mockRepo := new(MockCreatorRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewCreatorService(mockRepo, mockPublisher)

	mockRepo.On("Delete", "1").Return(nil).Once()
	mockPublisher.On("PublishCreatorEvent", mock.Anything).Return(assert.AnError).Once()

	// The delete already persisted; a broker error is logged, not returned.
	err := service.DeleteCreator("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
