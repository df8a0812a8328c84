package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"keyword-campaigns/internal/core/domain"
)

// fieldColumns whitelists the updatable columns. Field keys arrive from
// the commit protocol; anything outside this map is rejected before any
// SQL is assembled.
var fieldColumns = map[string]string{
	domain.FieldCountry:      "country",
	domain.FieldKeyword:      "keyword",
	domain.FieldStartDate:    "start_date",
	domain.FieldDifficulty:   "difficulty",
	domain.FieldCurrentRank:  "current_rank",
	domain.FieldEndRank:      "end_rank",
	domain.FieldCampaignType: "campaign_type",
	domain.FieldDay1:         "day1",
	domain.FieldDay2:         "day2",
	domain.FieldDay3:         "day3",
	domain.FieldDay4:         "day4",
	domain.FieldDay5:         "day5",
	domain.FieldNote:         "note",
}

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// ListByOwner returns all campaigns owned by ownerID, oldest first.
func (r *CampaignRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, owner_id, country, keyword, start_date, difficulty,
               current_rank, end_rank, campaign_type,
               day1, day2, day3, day4, day5, note, created_at, updated_at
        FROM campaigns
        WHERE owner_id = $1
        ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(
			&c.ID, &c.OwnerID, &c.Country, &c.Keyword, &c.StartDate,
			&c.Difficulty, &c.CurrentRank, &c.EndRank, &c.CampaignType,
			&c.Day1, &c.Day2, &c.Day3, &c.Day4, &c.Day5, &c.Note,
			&c.CreatedAt, &c.UpdatedAt,
		)
		return c, err
	})
}

// Add stores a new campaign under a generated id.
func (r *CampaignRepository) Add(ctx context.Context, c domain.Campaign) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
        INSERT INTO campaigns
            (id, owner_id, country, keyword, start_date, difficulty,
             current_rank, end_rank, campaign_type,
             day1, day2, day3, day4, day5, note, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		id, c.OwnerID, c.Country, c.Keyword, c.StartDate, c.Difficulty,
		c.CurrentRank, c.EndRank, c.CampaignType,
		c.Day1, c.Day2, c.Day3, c.Day4, c.Day5, c.Note, now, now)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateField changes a single whitelisted column of one campaign, scoped
// to its owner. Updating a record that does not exist or belongs to a
// different owner is an error.
func (r *CampaignRepository) UpdateField(ctx context.Context, ownerID, campaignID, field string, value any) error {
	col, ok := fieldColumns[field]
	if !ok {
		return fmt.Errorf("field %q is not updatable", field)
	}
	v, err := domain.FieldValue(field, value)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE campaigns SET %s = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`, col)
	tag, err := r.pool.Exec(ctx, query, v, campaignID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s not found for owner", campaignID)
	}
	return nil
}
