package port

import (
	"context"
	"errors"
	"fmt"

	"keyword-campaigns/internal/core/domain"
)

// ErrCampaignNotFound is returned when a commit references a record that is
// missing from the local collection. It indicates the displayed state and
// the held state have drifted apart; the commit is aborted before any
// store call.
var ErrCampaignNotFound = errors.New("campaign not found in local state")

// FieldError scopes a failed field update to the field it targeted so the
// caller can surface a message naming it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("saving field %q failed: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// CampaignRepository is the outbound port to the document store. Documents
// are addressed by opaque id; field updates are partial and touch only the
// named field. Every operation is scoped to the record's owner.
type CampaignRepository interface {
	// ListByOwner returns all campaigns owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Campaign, error)
	// Add stores a new campaign and returns its generated id.
	Add(ctx context.Context, c domain.Campaign) (string, error)
	// UpdateField changes a single field of one campaign. It fails when the
	// campaign does not exist or is not owned by ownerID.
	UpdateField(ctx context.Context, ownerID, campaignID, field string, value any) error
}

// SettingsRepository persists the per-owner settings. Get returns defaults
// for anything the owner never saved.
type SettingsRepository interface {
	Get(ctx context.Context, ownerID string) (domain.Settings, error)
	Save(ctx context.Context, ownerID string, s domain.Settings) error
}

// UserRepository looks up accounts for authentication.
type UserRepository interface {
	// FindByEmail returns nil, nil when no such account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
