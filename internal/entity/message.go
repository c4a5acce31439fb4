package entity

import (
	"context"
	"time"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
	MessageStatusFailed    = "failed"
)

type Message struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Body      string    `json:"message"`
	Direction Direction `json:"direction"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRepositoryInterface: histórico append-only da conversa, do mais antigo pro mais novo.
type MessageRepositoryInterface interface {
	ListByPhone(ctx context.Context, phone string) ([]*Message, error)
	Append(ctx context.Context, phone, body string, direction Direction, status string) error
}
