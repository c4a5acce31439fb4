package entity

import (
	"context"
	"errors"
	"strings"
)

type Trigger string

const (
	TriggerNoResponse   Trigger = "no_response"
	TriggerProposalSent Trigger = "proposal_sent"
	TriggerColdLead     Trigger = "cold_lead"
)

// FollowUpTriggers lista os gatilhos conhecidos. Outros valores são aceitos mas nunca disparam.
var FollowUpTriggers = []Trigger{TriggerNoResponse, TriggerProposalSent, TriggerColdLead}

// FollowUpRule: a primeira regra da lista que dispara para um lead vence.
type FollowUpRule struct {
	ID         string  `json:"id"`
	Trigger    Trigger `json:"trigger"`
	DelayHours float64 `json:"delay_hours"`
	Message    string  `json:"message"`
}

func (r *FollowUpRule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("rule id is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("rule message is required")
	}
	if r.DelayHours <= 0 {
		return errors.New("rule delay_hours must be positive")
	}
	return nil
}

type FollowUpRuleRepositoryInterface interface {
	ListActiveFollowUpRules(ctx context.Context) ([]FollowUpRule, error)
}

// DefaultFollowUpRules são as regras de produção, em ordem de prioridade.
func DefaultFollowUpRules() []FollowUpRule {
	return []FollowUpRule{
		{
			ID:         "sem_resposta_24h",
			Trigger:    TriggerNoResponse,
			DelayHours: 24,
			Message:    "Olá! Notei que você demonstrou interesse em energia solar. Tem alguma dúvida que eu possa esclarecer?",
		},
		{
			ID:         "proposta_enviada_48h",
			Trigger:    TriggerProposalSent,
			DelayHours: 48,
			Message:    "Oi! Você recebeu nossa proposta de energia solar. Gostaria de tirar alguma dúvida ou agendar uma visita técnica?",
		},
		{
			ID:         "lead_frio_7dias",
			Trigger:    TriggerColdLead,
			DelayHours: 168, // 7 dias
			Message:    "Olá! Temos novidades sobre energia solar que podem te interessar. Que tal conversarmos?",
		},
	}
}
