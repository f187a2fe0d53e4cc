package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinarregistration/internal/domain"
)

var registrantCols = []string{"id", "name", "email", "organization", "city", "country", "created_at",
	"reminder_week_sent", "reminder_day_sent", "reminder_hour_sent"}

func TestRegistrantRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success fills id and created_at",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("Jane Doe", "jane@example.com", "AFLI", "Lagos", "Nigeria").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("reg-1", createdAt))
			},
			wantID: "reg-1",
		},
		{
			name: "unique violation maps to ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("Jane Doe", "jane@example.com", "AFLI", "Lagos", "Nigeria").
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "other errors pass through",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("Jane Doe", "jane@example.com", "AFLI", "Lagos", "Nigeria").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewRegistrantRepository(db)
			reg := domain.NewRegistrant("Jane Doe", "jane@example.com", "AFLI", "Lagos", "Nigeria")
			err = repo.Create(ctx, reg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, reg.ID)
				assert.Equal(t, createdAt, reg.CreatedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrantRepository_List(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRegistrantRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM registrations\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(registrantCols).
			AddRow("reg-2", "B", "b@example.com", "", "", "", now, false, false, false).
			AddRow("reg-1", "A", "a@example.com", "Org", "City", "Country", now.Add(-time.Hour), true, true, false))
	regs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "reg-2", regs[0].ID)
	assert.Equal(t, "Org", regs[1].Organization)

	mock.ExpectQuery(`FROM registrations`).
		WillReturnRows(sqlmock.NewRows(registrantCols))
	regs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrantRepository_ListPendingReminder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		tier   domain.ReminderTier
		column string
	}{
		{domain.TierWeek, "reminder_week_sent"},
		{domain.TierDay, "reminder_day_sent"},
		{domain.TierHour, "reminder_hour_sent"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`WHERE ` + tt.column + ` = false`).
				WillReturnRows(sqlmock.NewRows(registrantCols).
					AddRow("reg-1", "A", "a@example.com", "", "", "", time.Now(), false, false, false))
			regs, err := NewRegistrantRepository(db).ListPendingReminder(ctx, tt.tier)
			require.NoError(t, err)
			assert.Len(t, regs, 1)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = NewRegistrantRepository(db).ListPendingReminder(ctx, domain.ReminderTier("month"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegistrantRepository_ClaimReminder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantClaimed bool
		wantErr     bool
	}{
		{
			name: "unclaimed row is claimed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET reminder_day_sent = true WHERE id = \$1 AND reminder_day_sent = false`).
					WithArgs("reg-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantClaimed: true,
		},
		{
			name: "already sent is not claimed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET reminder_day_sent = true`).
					WithArgs("reg-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantClaimed: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET reminder_day_sent = true`).
					WithArgs("reg-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			claimed, err := NewRegistrantRepository(db).ClaimReminder(ctx, "reg-1", domain.TierDay)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantClaimed, claimed)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrantRepository_ReleaseReminder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE registrations SET reminder_hour_sent = false WHERE id = \$1`).
		WithArgs("reg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewRegistrantRepository(db).ReleaseReminder(context.Background(), "reg-1", domain.TierHour))
	require.NoError(t, mock.ExpectationsWereMet())
}
