package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/solarleads/internal/entity"
)

type RuleRepository struct {
	DB     *sql.DB
	Logger logrus.FieldLogger
}

func NewRuleRepository(db *sql.DB, logger logrus.FieldLogger) *RuleRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RuleRepository{DB: db, Logger: logger}
}

type triggerConfig struct {
	DelayHours float64 `json:"delay_hours"`
}

type actionConfig struct {
	Message string `json:"message"`
}

// ListActiveFollowUpRules lê as automações ativas de follow-up, na ordem de criação.
// Só carrega gatilhos conhecidos; linhas com JSON inválido são puladas.
func (r *RuleRepository) ListActiveFollowUpRules(ctx context.Context) ([]entity.FollowUpRule, error) {
	query := `
		SELECT id, trigger_type, COALESCE(trigger_config, '{}'), COALESCE(action_config, '{}')
		FROM automations
		WHERE status = 'active'
		  AND action_type = 'send_message'
		  AND trigger_type = ANY($1)
		ORDER BY created_at ASC, id ASC
	`

	triggers := make([]string, 0, len(entity.FollowUpTriggers))
	for _, t := range entity.FollowUpTriggers {
		triggers = append(triggers, string(t))
	}

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(triggers))
	if err != nil {
		return nil, fmt.Errorf("erro ao listar automações: %w", err)
	}
	defer rows.Close()

	rules := []entity.FollowUpRule{}
	for rows.Next() {
		var (
			id, trigger     string
			trigCfg, actCfg []byte
			tc              triggerConfig
			ac              actionConfig
		)
		if err := rows.Scan(&id, &trigger, &trigCfg, &actCfg); err != nil {
			return nil, fmt.Errorf("erro ao ler automação: %w", err)
		}

		if err := json.Unmarshal(trigCfg, &tc); err != nil {
			r.Logger.WithError(err).WithField("automation_id", id).Warn("⚠️ Automação com trigger_config inválido")
			continue
		}
		if err := json.Unmarshal(actCfg, &ac); err != nil {
			r.Logger.WithError(err).WithField("automation_id", id).Warn("⚠️ Automação com action_config inválido")
			continue
		}

		rules = append(rules, entity.FollowUpRule{
			ID:         id,
			Trigger:    entity.Trigger(trigger),
			DelayHours: tc.DelayHours,
			Message:    ac.Message,
		})
	}

	return rules, rows.Err()
}
