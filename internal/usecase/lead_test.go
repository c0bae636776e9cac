package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rcardozo/lead-manager/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventProducer
type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestUseCase(repo entity.LeadRepositoryInterface) *LeadUseCase {
	return NewLeadUseCase(repo, nil, nil, zap.NewNop().Sugar())
}

func TestCreateLeadNormalizesAndDefaults(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(mockRepo)

	lead, err := uc.Create(context.Background(), CreateLeadInput{
		Name:    "  Jane Doe  ",
		Email:   " JANE@X.COM ",
		Phone:   " +1 234-567-8901 ",
		Company: " Acme ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "jane@x.com", lead.Email)
	assert.Equal(t, "+1 234-567-8901", lead.Phone)
	assert.Equal(t, "Acme", lead.Company)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.False(t, lead.CreatedAt.IsZero())
	assert.Equal(t, lead.CreatedAt, lead.UpdatedAt)

	_, err = uuid.Parse(lead.ID)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestCreateLeadRejectsMissingName(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := newTestUseCase(mockRepo)

	for _, name := range []string{"", "   "} {
		_, err := uc.Create(context.Background(), CreateLeadInput{Name: name, Email: "a@b.co"})
		assert.Error(t, err)
		assert.True(t, IsValidationError(err))

		var verrs ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Equal(t, "Name is required", verrs.Fields()["name"])
	}

	// Nothing reaches the repository on validation failure.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadRejectsInvalidEmail(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := newTestUseCase(mockRepo)

	_, err := uc.Create(context.Background(), CreateLeadInput{Name: "Jane", Email: "not-an-email"})
	assert.True(t, IsValidationError(err))

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Please enter a valid email address", verrs.Fields()["email"])
}

func TestCreateLeadRejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := newTestUseCase(mockRepo)

	_, err := uc.Create(context.Background(), CreateLeadInput{
		Name:   "Jane",
		Email:  "a@b.co",
		Status: "Converted",
	})
	assert.True(t, IsValidationError(err))

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields()["status"], "must be one of")
}

func TestUpdateLeadPartialPatch(t *testing.T) {
	existing := &entity.Lead{
		ID:        uuid.NewString(),
		Name:      "Jane Doe",
		Email:     "jane@x.com",
		Phone:     "+15551234567",
		Company:   "Acme",
		Status:    entity.StatusNew,
		Notes:     "met at conference",
		Source:    "referral",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(mockRepo)

	status := entity.StatusQualified
	updated, err := uc.Update(context.Background(), existing.ID, UpdateLeadInput{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusQualified, updated.Status)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "jane@x.com", updated.Email)
	assert.Equal(t, "met at conference", updated.Notes)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateLeadNilFieldsLeftUntouched(t *testing.T) {
	existing := &entity.Lead{
		ID:        uuid.NewString(),
		Name:      "Jane Doe",
		Email:     "jane@x.com",
		Company:   "Acme",
		Status:    entity.StatusContacted,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(mockRepo)

	// JSON nulls decode to nil pointers, so a null never clears a value.
	updated, err := uc.Update(context.Background(), existing.ID, UpdateLeadInput{})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, entity.StatusContacted, updated.Status)
}

func TestUpdateLeadRejectsInvalidResult(t *testing.T) {
	existing := &entity.Lead{
		ID:     uuid.NewString(),
		Name:   "Jane Doe",
		Email:  "jane@x.com",
		Status: entity.StatusNew,
	}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	uc := newTestUseCase(mockRepo)

	empty := ""
	_, err := uc.Update(context.Background(), existing.ID, UpdateLeadInput{Name: &empty})
	assert.True(t, IsValidationError(err))

	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateLeadNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := newTestUseCase(mockRepo)

	_, err := uc.Update(context.Background(), "missing", UpdateLeadInput{})
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestDeleteLeadNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("DeleteByID", mock.Anything, "missing").Return(entity.ErrLeadNotFound)

	uc := newTestUseCase(mockRepo)

	// Repeated deletes of the same id keep reporting not found.
	assert.ErrorIs(t, uc.Delete(context.Background(), "missing"), entity.ErrLeadNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), "missing"), entity.ErrLeadNotFound)
}

func TestCreateLeadPublishesEvent(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockProducer := new(MockEventProducer)
	mockProducer.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e LeadEvent) bool {
		return e.Event == EventLeadCreated && e.Email == "jane@x.com"
	})).Return(nil)

	uc := NewLeadUseCase(mockRepo, mockProducer, nil, zap.NewNop().Sugar())

	_, err := uc.Create(context.Background(), CreateLeadInput{Name: "Jane", Email: "jane@x.com"})
	assert.NoError(t, err)

	mockProducer.AssertExpectations(t)
}
