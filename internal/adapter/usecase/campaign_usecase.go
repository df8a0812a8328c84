package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"keyword-campaigns/internal/core/domain"
	"keyword-campaigns/internal/core/port"
)

// CampaignService holds the in-memory campaign collection and implements
// the optimistic cell-commit protocol against the repository. It
// implements port.CampaignUseCase.
type CampaignService struct {
	repo port.CampaignRepository

	mu        sync.Mutex
	campaigns []domain.Campaign
}

// NewCampaignService creates a service with an empty collection; call
// Refresh to populate it.
func NewCampaignService(repo port.CampaignRepository) *CampaignService {
	return &CampaignService{repo: repo}
}

// Refresh replaces the in-memory collection with the owner's campaigns
// from the store.
func (s *CampaignService) Refresh(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	if ownerID == "" {
		return nil, port.ErrNotAuthenticated
	}
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch campaigns: %w", err)
	}
	s.mu.Lock()
	s.campaigns = list
	s.mu.Unlock()
	return slices.Clone(list), nil
}

// Campaigns returns a copy of the current in-memory collection.
func (s *CampaignService) Campaigns() []domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.campaigns)
}

// Add creates a campaign from the minimal input with every other editable
// field null/empty, stores it, then refetches the collection. The record
// appears only once confirmed and refetched; there is no optimistic
// insert, so a failed add leaves the collection untouched and the error
// goes back to the caller (the add form keeps its input).
func (s *CampaignService) Add(ctx context.Context, ownerID string, in domain.NewCampaignInput) error {
	if ownerID == "" {
		return port.ErrNotAuthenticated
	}
	c := domain.Campaign{
		OwnerID:     ownerID,
		Country:     in.Country,
		Keyword:     in.Keyword,
		Difficulty:  in.Difficulty,
		CurrentRank: in.CurrentRank,
	}
	if _, err := s.repo.Add(ctx, c); err != nil {
		return fmt.Errorf("add campaign: %w", err)
	}
	_, err := s.Refresh(ctx, ownerID)
	return err
}

// CommitField runs the optimistic update protocol for one cell commit:
//
//  1. locate the record locally; a miss is a desync and aborts before any
//     store call,
//  2. snapshot the collection,
//  3. apply the change in memory so it is visible immediately,
//  4. issue the partial store update,
//  5. on failure restore the snapshot verbatim and return a field-scoped
//     error.
//
// The lock is released around the store call so other cells stay editable
// while a commit is in flight. Two racing commits to different fields each
// patch their own field into the then-current record; a rollback restores
// the snapshot taken at call time, which can undo a field committed by a
// different in-flight request. Accepted limitation.
func (s *CampaignService) CommitField(ctx context.Context, ownerID, campaignID, field string, value any) error {
	if ownerID == "" {
		return port.ErrNotAuthenticated
	}
	s.mu.Lock()
	idx := slices.IndexFunc(s.campaigns, func(c domain.Campaign) bool { return c.ID == campaignID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", port.ErrCampaignNotFound, campaignID)
	}
	snapshot := slices.Clone(s.campaigns)
	if err := domain.SetField(&s.campaigns[idx], field, value); err != nil {
		s.campaigns = snapshot
		s.mu.Unlock()
		return &port.FieldError{Field: field, Err: err}
	}
	s.mu.Unlock()

	if err := s.repo.UpdateField(ctx, ownerID, campaignID, field, value); err != nil {
		s.mu.Lock()
		s.campaigns = snapshot
		s.mu.Unlock()
		return &port.FieldError{Field: field, Err: err}
	}
	return nil
}
