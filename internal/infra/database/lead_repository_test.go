package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/solarleads/internal/entity"
)

func TestLeadRepositoryListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "phone", "name", "consumo_kwh", "valor_conta", "status", "created_at", "updated_at"}).
		AddRow("1", "5511999990001", "Maria", 350.5, 420.0, "proposal", created, created).
		AddRow("2", "5511999990002", "", nil, nil, "frio", created, created)

	mock.ExpectQuery("SELECT id, phone, COALESCE\\(name, ''\\)").WillReturnRows(rows)

	repo := NewLeadRepository(db)
	leads, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, entity.LeadStatusProposal, leads[0].Status)
	require.NotNil(t, leads[0].ConsumoKwh)
	assert.Equal(t, 350.5, *leads[0].ConsumoKwh)
	assert.Equal(t, entity.LeadStatusCold, leads[1].Status)
	assert.Nil(t, leads[1].ConsumoKwh)
	assert.Nil(t, leads[1].ValorConta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryListAllError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, phone").WillReturnError(errors.New("connection reset"))

	_, err = NewLeadRepository(db).ListAll(context.Background())

	assert.ErrorContains(t, err, "erro ao listar leads")
	assert.NoError(t, mock.ExpectationsWereMet())
}
