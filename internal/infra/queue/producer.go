package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpSentEvent é publicado depois de cada follow-up entregue ao gateway.
type FollowUpSentEvent struct {
	EventID string    `json:"event_id"`
	LeadID  string    `json:"lead_id"`
	Phone   string    `json:"phone"`
	RuleID  string    `json:"rule_id"`
	Trigger string    `json:"trigger"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// TriggerRequest pede uma passada de follow-up fora do agendamento.
type TriggerRequest struct {
	RequestedBy string    `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher é o subconjunto de *amqp.Channel usado pelo producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishFollowUpSent(ctx context.Context, event FollowUpSentEvent) error {
	return p.publish(ctx, SentRoutingKey, event.EventID, event)
}

func (p *RabbitMQProducer) PublishTrigger(ctx context.Context, req TriggerRequest) error {
	return p.publish(ctx, TriggerRoutingKey, "", req)
}

func (p *RabbitMQProducer) publish(ctx context.Context, key, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
