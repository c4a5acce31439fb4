package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/solarleads/internal/entity"
)

func TestRuleRepositoryListActiveFollowUpRules(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "trigger_type", "trigger_config", "action_config"}).
		AddRow("10", "no_response", `{"delay_hours": 24}`, `{"message": "Tem alguma dúvida?"}`).
		AddRow("11", "cold_lead", `not json`, `{"message": "x"}`).
		AddRow("12", "cold_lead", `{"delay_hours": 168}`, `{"message": "Temos novidades!"}`)

	// Só gatilhos conhecidos são carregados.
	mock.ExpectQuery("FROM automations").
		WithArgs(pq.Array([]string{"no_response", "proposal_sent", "cold_lead"})).
		WillReturnRows(rows)

	logger, hook := test.NewNullLogger()
	rules, err := NewRuleRepository(db, logger).ListActiveFollowUpRules(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, entity.FollowUpRule{ID: "10", Trigger: entity.TriggerNoResponse, DelayHours: 24, Message: "Tem alguma dúvida?"}, rules[0])
	assert.Equal(t, "12", rules[1].ID)
	assert.Equal(t, 168.0, rules[1].DelayHours)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "11", hook.LastEntry().Data["automation_id"])
}
