package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/solarleads/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// ListByPhone devolve a conversa do mais antigo pro mais novo.
func (r *MessageRepository) ListByPhone(ctx context.Context, phone string) ([]*entity.Message, error) {
	query := `
		SELECT id, phone, message, direction, COALESCE(status, ''), created_at
		FROM messages
		WHERE phone = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conversa: %w", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var (
			msg       entity.Message
			direction string
		)
		if err := rows.Scan(&msg.ID, &msg.Phone, &msg.Body, &direction, &msg.Status, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		msg.Direction = entity.Direction(direction)
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

// Append só insere; mensagens existentes nunca são alteradas.
func (r *MessageRepository) Append(ctx context.Context, phone, body string, direction entity.Direction, status string) error {
	query := `
		INSERT INTO messages (phone, message, direction, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if _, err := r.DB.ExecContext(ctx, query, phone, body, string(direction), status); err != nil {
		return fmt.Errorf("erro ao registrar mensagem: %w", err)
	}
	return nil
}
