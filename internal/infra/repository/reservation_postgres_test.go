package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
)

func TestWithinDayTakesPostgresLocks(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := NewReservationGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs(domain.DayLockKey(1, "2024-12-25")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "reservations" WHERE .* FOR UPDATE`).
		WithArgs(1, "2024-12-25").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	called := false
	err = repo.WithinDay(context.Background(), 1, "2024-12-25", func(tx domain.Repository) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
