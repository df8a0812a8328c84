package port

import (
	"context"
	"errors"

	"keyword-campaigns/internal/core/domain"
)

// ErrNotAuthenticated blocks every data operation that arrives without an
// owner identity.
var ErrNotAuthenticated = errors.New("not authenticated")

// CampaignUseCase is the primary port into the campaign collection. The
// owner identity is an explicit argument on every call; there is no
// ambient session state.
type CampaignUseCase interface {
	// Refresh replaces the in-memory collection with the owner's campaigns
	// from the store and returns a copy.
	Refresh(ctx context.Context, ownerID string) ([]domain.Campaign, error)

	// Campaigns returns a copy of the current in-memory collection.
	Campaigns() []domain.Campaign

	// Add creates a campaign from the minimal input, submits it to the
	// store and refetches the collection. There is no optimistic insert:
	// the new record appears only once confirmed and refetched.
	Add(ctx context.Context, ownerID string, in domain.NewCampaignInput) error

	// CommitField applies a single-field change optimistically to the
	// in-memory collection, then issues the store update. On store failure
	// the pre-commit snapshot is restored verbatim and a *FieldError is
	// returned. A commit for a record missing locally aborts with
	// ErrCampaignNotFound before any store call.
	CommitField(ctx context.Context, ownerID, campaignID, field string, value any) error
}
