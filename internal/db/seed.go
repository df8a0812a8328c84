package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts a demo account (demo@example.com / demo-password) and a few
// campaigns so a fresh install has something to show. Inserts are
// idempotent via ON CONFLICT DO NOTHING.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const userID = "demo-user"
	_, err = pool.Exec(ctx, `INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, now()) ON CONFLICT (email) DO NOTHING`,
		userID, "demo@example.com", string(hash))
	if err != nil {
		return err
	}

	start := time.Now().AddDate(0, 0, -7)
	type row struct {
		country, keyword, campaignType string
		difficulty, currentRank        float64
		days                           []int64
	}
	rows := []row{
		{"Germany", "fitness tracker", "Linear", 42, 55, []int64{120, 140, 160, 150, 130}},
		{"USA", "meal planner", "Kick", 67, 120, []int64{400, 380}},
		{"Austria", "podcast player", "Exponential", 25, 30, nil},
	}
	for _, r := range rows {
		var days [5]*int64
		for i := range r.days {
			days[i] = &r.days[i]
		}
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
    (id, owner_id, country, keyword, start_date, difficulty, current_rank,
     campaign_type, day1, day2, day3, day4, day5, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now()) ON CONFLICT DO NOTHING`,
			uuid.NewString(), userID, r.country, r.keyword, start,
			r.difficulty, r.currentRank, r.campaignType,
			days[0], days[1], days[2], days[3], days[4])
		if err != nil {
			return err
		}
	}
	return nil
}
