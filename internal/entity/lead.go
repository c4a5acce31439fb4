package entity

import (
	"context"
	"time"
)

type LeadStatus string

// Pipeline de vendas, na ordem em que o lead avança.
const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusClosedWon   LeadStatus = "closed_won"
	LeadStatusClosedLost  LeadStatus = "closed_lost"
	LeadStatusCold        LeadStatus = "frio"
)

var leadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusNegotiation,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
	LeadStatusCold,
}

func (s LeadStatus) IsValid() bool {
	for _, st := range leadStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Lead struct {
	ID         string     `json:"id"`
	Phone      string     `json:"phone"`
	Name       string     `json:"name,omitempty"`
	ConsumoKwh *float64   `json:"consumo_kwh,omitempty"`
	ValorConta *float64   `json:"valor_conta,omitempty"`
	Status     LeadStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LeadRepositoryInterface é somente leitura: o follow-up nunca altera o status do lead.
type LeadRepositoryInterface interface {
	ListAll(ctx context.Context) ([]*Lead, error)
}
