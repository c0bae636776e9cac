package client

import (
	"context"
	"sync"

	"github.com/rcardozo/lead-manager/internal/entity"
	"github.com/rcardozo/lead-manager/internal/usecase"
)

// Snapshot is the cache state handed to subscribers.
type Snapshot struct {
	Leads   []entity.Lead
	Loading bool
	Err     string
}

// LeadCache keeps a client-local copy of the full lead list. Every mutation
// triggers a wholesale refresh instead of patching local state, so the view
// always matches the server after each round trip.
type LeadCache struct {
	client *Client

	mu      sync.RWMutex
	leads   []entity.Lead
	loading bool
	err     string
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewLeadCache(c *Client) *LeadCache {
	return &LeadCache{
		client: c,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Load fetches the list for the first time. Equivalent to Refresh, named
// separately to mark the mount-time call site.
func (lc *LeadCache) Load(ctx context.Context) error {
	return lc.Refresh(ctx)
}

// Refresh re-issues the list fetch and replaces local state wholesale.
func (lc *LeadCache) Refresh(ctx context.Context) error {
	lc.setLoading(true)

	leads, err := lc.client.ListLeads(ctx)

	lc.mu.Lock()
	lc.loading = false
	if err != nil {
		lc.err = "Failed to load leads. Please check if the server is running."
	} else {
		lc.leads = leads
		lc.err = ""
	}
	snapshot := lc.snapshotLocked()
	subs := lc.subscribersLocked()
	lc.mu.Unlock()

	notify(subs, snapshot)
	return err
}

// Subscribe registers a callback for every state change and returns an
// unsubscribe function.
func (lc *LeadCache) Subscribe(fn func(Snapshot)) func() {
	lc.mu.Lock()
	id := lc.nextSub
	lc.nextSub++
	lc.subs[id] = fn
	lc.mu.Unlock()

	return func() {
		lc.mu.Lock()
		delete(lc.subs, id)
		lc.mu.Unlock()
	}
}

func (lc *LeadCache) Leads() []entity.Lead {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	leads := make([]entity.Lead, len(lc.leads))
	copy(leads, lc.leads)
	return leads
}

func (lc *LeadCache) Loading() bool {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return lc.loading
}

func (lc *LeadCache) Err() string {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return lc.err
}

// DismissError clears the user-visible error banner.
func (lc *LeadCache) DismissError() {
	lc.mu.Lock()
	lc.err = ""
	snapshot := lc.snapshotLocked()
	subs := lc.subscribersLocked()
	lc.mu.Unlock()

	notify(subs, snapshot)
}

// CreateLead creates a lead through the API, then refreshes.
func (lc *LeadCache) CreateLead(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	lead, err := lc.client.CreateLead(ctx, input)
	if err != nil {
		return nil, err
	}
	lc.Refresh(ctx)
	return lead, nil
}

// UpdateLead updates a lead through the API, then refreshes.
func (lc *LeadCache) UpdateLead(ctx context.Context, id string, input usecase.UpdateLeadInput) (*entity.Lead, error) {
	lead, err := lc.client.UpdateLead(ctx, id, input)
	if err != nil {
		return nil, err
	}
	lc.Refresh(ctx)
	return lead, nil
}

// DeleteLead deletes a lead through the API, then refreshes.
func (lc *LeadCache) DeleteLead(ctx context.Context, id string) error {
	if err := lc.client.DeleteLead(ctx, id); err != nil {
		return err
	}
	return lc.Refresh(ctx)
}

func (lc *LeadCache) setLoading(v bool) {
	lc.mu.Lock()
	lc.loading = v
	snapshot := lc.snapshotLocked()
	subs := lc.subscribersLocked()
	lc.mu.Unlock()

	notify(subs, snapshot)
}

func (lc *LeadCache) snapshotLocked() Snapshot {
	leads := make([]entity.Lead, len(lc.leads))
	copy(leads, lc.leads)
	return Snapshot{
		Leads:   leads,
		Loading: lc.loading,
		Err:     lc.err,
	}
}

func (lc *LeadCache) subscribersLocked() []func(Snapshot) {
	subs := make([]func(Snapshot), 0, len(lc.subs))
	for _, fn := range lc.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Snapshot), s Snapshot) {
	for _, fn := range subs {
		fn(s)
	}
}
