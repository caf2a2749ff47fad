package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func newMockPostgres(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresRepository{db: sqlx.NewDb(db, "postgres")}, mock
}

func TestPostgresGetEquipmentMissing(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM equipment WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e, err := repo.GetEquipment(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateEquipmentDefaults(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO equipment`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := &models.Equipment{Name: "Dock", Category: "Peripheral"}
	require.NoError(t, repo.CreateEquipment(context.Background(), e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, models.EquipmentInStock, e.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncAssignmentsDiff(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM license_assignments WHERE license_id = $1`)).
		WithArgs("lic-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "license_id", "collaborator_id"}).
			AddRow("as-1", "lic-1", "col-keep").
			AddRow("as-2", "lic-1", "col-drop"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM license_assignments WHERE id = $1`)).
		WithArgs("as-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO license_assignments`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SyncAssignments(context.Background(), "lic-1", []string{"col-keep", "col-new"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
