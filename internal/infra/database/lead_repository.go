package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/solarleads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// ListAll devolve todos os leads em ordem estável (created_at, id).
func (r *LeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT id, phone, COALESCE(name, ''), consumo_kwh, valor_conta, status, created_at, updated_at
		FROM leads
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var (
			lead       entity.Lead
			status     string
			consumo    sql.NullFloat64
			valorConta sql.NullFloat64
		)

		if err := rows.Scan(
			&lead.ID,
			&lead.Phone,
			&lead.Name,
			&consumo,
			&valorConta,
			&status,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler lead: %w", err)
		}

		lead.Status = entity.LeadStatus(status)
		lead.ConsumoKwh = nullFloat(consumo)
		lead.ValorConta = nullFloat(valorConta)
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
