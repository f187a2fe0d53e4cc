package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"webinarregistration/internal/domain"
)

const registrantColumns = `id, name, email, organization, city, country, created_at,
		reminder_week_sent, reminder_day_sent, reminder_hour_sent`

// reminderColumns maps each tier to its sent-marker column. Column names are
// never taken from input.
var reminderColumns = map[domain.ReminderTier]string{
	domain.TierWeek: "reminder_week_sent",
	domain.TierDay:  "reminder_day_sent",
	domain.TierHour: "reminder_hour_sent",
}

type registrantRepository struct {
	DB *sql.DB
}

func NewRegistrantRepository(db *sql.DB) domain.RegistrantRepository {
	return &registrantRepository{
		DB: db,
	}
}

func reminderColumn(tier domain.ReminderTier) (string, error) {
	col, ok := reminderColumns[tier]
	if !ok {
		return "", fmt.Errorf("%w: unknown reminder tier %q", domain.ErrValidation, tier)
	}
	return col, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistrant(s rowScanner) (*domain.Registrant, error) {
	reg := &domain.Registrant{}
	err := s.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Organization, &reg.City, &reg.Country, &reg.CreatedAt,
		&reg.ReminderWeekSent, &reg.ReminderDaySent, &reg.ReminderHourSent)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrantRepository) Create(ctx context.Context, reg *domain.Registrant) error {
	query := `
		INSERT INTO registrations (name, email, organization, city, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, reg.Name, reg.Email, reg.Organization, reg.City, reg.Country).
		Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *registrantRepository) List(ctx context.Context) ([]*domain.Registrant, error) {
	query := `SELECT ` + registrantColumns + `
		FROM registrations
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *registrantRepository) ListPendingReminder(ctx context.Context, tier domain.ReminderTier) ([]*domain.Registrant, error) {
	col, err := reminderColumn(tier)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + registrantColumns + `
		FROM registrations
		WHERE ` + col + ` = false
		ORDER BY created_at ASC
	`
	return r.list(ctx, query)
}

func (r *registrantRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registrant, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registrant
	for rows.Next() {
		reg, err := scanRegistrant(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registrant{}
	}
	return regs, nil
}

func (r *registrantRepository) ClaimReminder(ctx context.Context, id string, tier domain.ReminderTier) (bool, error) {
	col, err := reminderColumn(tier)
	if err != nil {
		return false, err
	}
	query := `UPDATE registrations SET ` + col + ` = true WHERE id = $1 AND ` + col + ` = false`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *registrantRepository) ReleaseReminder(ctx context.Context, id string, tier domain.ReminderTier) error {
	col, err := reminderColumn(tier)
	if err != nil {
		return err
	}
	query := `UPDATE registrations SET ` + col + ` = false WHERE id = $1`
	_, err = r.DB.ExecContext(ctx, query, id)
	return err
}
