package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rcardozo/lead-manager/internal/entity"
)

// LeadEvent is published after every successful mutation.
type LeadEvent struct {
	Event  string `json:"event"`
	LeadID string `json:"lead_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
}

const (
	EventLeadCreated = "lead.created"
	EventLeadUpdated = "lead.updated"
	EventLeadDeleted = "lead.deleted"
)

type EventProducerInterface interface {
	PublishLeadEvent(ctx context.Context, event LeadEvent) error
}

// ListCacheInterface is an optional read cache for the full lead list.
type ListCacheInterface interface {
	GetList(ctx context.Context) ([]entity.Lead, bool)
	SetList(ctx context.Context, leads []entity.Lead)
	Invalidate(ctx context.Context)
}

// LeadUseCase owns the lead lifecycle: normalization, identity and
// timestamp assignment, schema validation, and delegation to the repository.
type LeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer EventProducerInterface
	Cache    ListCacheInterface
	Log      *zap.SugaredLogger
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, producer EventProducerInterface, cache ListCacheInterface, log *zap.SugaredLogger) *LeadUseCase {
	return &LeadUseCase{
		Repo:     repo,
		Producer: producer,
		Cache:    cache,
		Log:      log,
	}
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	now := time.Now().UTC()

	lead := &entity.Lead{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Company:   strings.TrimSpace(input.Company),
		Status:    strings.TrimSpace(input.Status),
		Notes:     strings.TrimSpace(input.Notes),
		Source:    strings.TrimSpace(input.Source),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if lead.Status == "" {
		lead.Status = entity.StatusNew
	}

	if errs := validateLead(lead); len(errs) > 0 {
		return nil, errs
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.publish(ctx, LeadEvent{
		Event:  EventLeadCreated,
		LeadID: lead.ID,
		Name:   lead.Name,
		Email:  lead.Email,
		Status: lead.Status,
	})

	return lead, nil
}

// List returns every lead, newest first.
func (uc *LeadUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	if uc.Cache != nil {
		if leads, ok := uc.Cache.GetList(ctx); ok {
			return leads, nil
		}
	}

	leads, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		uc.Cache.SetList(ctx, leads)
	}
	return leads, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.Repo.FindByID(ctx, id)
}

// Update applies only the fields present in the input, then re-validates the
// resulting document. Concurrent updates are last-write-wins.
func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		lead.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		lead.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		lead.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Company != nil {
		lead.Company = strings.TrimSpace(*input.Company)
	}
	if input.Status != nil {
		lead.Status = strings.TrimSpace(*input.Status)
	}
	if input.Notes != nil {
		lead.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Source != nil {
		lead.Source = strings.TrimSpace(*input.Source)
	}
	lead.UpdatedAt = time.Now().UTC()

	if errs := validateLead(lead); len(errs) > 0 {
		return nil, errs
	}

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.publish(ctx, LeadEvent{
		Event:  EventLeadUpdated,
		LeadID: lead.ID,
		Name:   lead.Name,
		Email:  lead.Email,
		Status: lead.Status,
	})

	return lead, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx)
	uc.publish(ctx, LeadEvent{Event: EventLeadDeleted, LeadID: id})
	return nil
}

func (uc *LeadUseCase) invalidate(ctx context.Context) {
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx)
	}
}

// publish is fire-and-forget: a broker failure never fails the request.
func (uc *LeadUseCase) publish(ctx context.Context, event LeadEvent) {
	if uc.Producer == nil {
		return
	}
	if err := uc.Producer.PublishLeadEvent(ctx, event); err != nil && uc.Log != nil {
		uc.Log.Errorw("publish lead event", "event", event.Event, "lead_id", event.LeadID, "err", err)
	}
}
