package planstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
)

// SQLPlanStore keeps the latest plan in the single-row latest_plan table
// created by repositories.InitSchema.
type SQLPlanStore struct {
	DB *sql.DB
}

func NewSQLPlanStore(db *sql.DB) *SQLPlanStore {
	return &SQLPlanStore{DB: db}
}

func (s *SQLPlanStore) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "planstore.sql.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sql plan store: db is nil")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	q := `
	INSERT INTO latest_plan (slot, plan_id, body, saved_at)
	VALUES (1, $1, $2, now())
	ON CONFLICT (slot) DO UPDATE
	SET plan_id = EXCLUDED.plan_id,
		body = EXCLUDED.body,
		saved_at = EXCLUDED.saved_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, plan.ID, string(b)); err != nil {
		return fmt.Errorf("save plan: upsert latest_plan: %w", err)
	}

	return nil
}

func (s *SQLPlanStore) LatestPlan(ctx context.Context) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "planstore.sql.LatestPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sql plan store: db is nil")
	}

	var body string
	err = s.DB.QueryRowContext(ctx, `SELECT body::text FROM latest_plan WHERE slot = 1;`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest plan: query latest_plan: %w", err)
	}

	return decodePlan([]byte(body))
}
