package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/solarleads/internal/entity"
)

// StaticRules é a lista configurada no boot. Nunca muda durante o processo.
type StaticRules []entity.FollowUpRule

func (s StaticRules) Rules(_ context.Context) ([]entity.FollowUpRule, error) {
	out := make([]entity.FollowUpRule, len(s))
	copy(out, s)
	return out, nil
}

// DatabaseRules relê as automações a cada passada. Se o banco falhar ou devolver
// regras inválidas, usa o último conjunto bom (ou o fallback estático).
type DatabaseRules struct {
	Repo     entity.FollowUpRuleRepositoryInterface
	Fallback StaticRules
	Logger   logrus.FieldLogger

	mu       sync.Mutex
	lastGood []entity.FollowUpRule
}

func NewDatabaseRules(repo entity.FollowUpRuleRepositoryInterface, fallback StaticRules, logger logrus.FieldLogger) *DatabaseRules {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DatabaseRules{
		Repo:     repo,
		Fallback: fallback,
		Logger:   logger,
	}
}

func (d *DatabaseRules) Rules(ctx context.Context) ([]entity.FollowUpRule, error) {
	rules, err := d.Repo.ListActiveFollowUpRules(ctx)
	if err == nil {
		if verrs := ValidateFollowUpRules(rules); len(verrs) > 0 {
			err = &DomainError{Code: CodeInvalidRule, Message: fmt.Sprintf("invalid follow-up rules: %v", verrs)}
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.Logger.WithError(err).Warn("⚠️ Falha ao carregar regras do banco, usando último conjunto válido")
		if d.lastGood != nil {
			return append([]entity.FollowUpRule(nil), d.lastGood...), nil
		}
		return d.Fallback.Rules(ctx)
	}

	d.lastGood = append([]entity.FollowUpRule(nil), rules...)
	return rules, nil
}
