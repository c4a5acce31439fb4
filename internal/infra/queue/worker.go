package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer é o subconjunto de *amqp.Channel usado pelo consumidor.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// TriggerConsumer executa uma passada de follow-up por mensagem na fila de gatilhos.
type TriggerConsumer struct {
	Channel Consumer
	RunPass func(ctx context.Context)
	Logger  logrus.FieldLogger
}

func NewTriggerConsumer(ch Consumer, runPass func(ctx context.Context), logger logrus.FieldLogger) *TriggerConsumer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TriggerConsumer{
		Channel: ch,
		RunPass: runPass,
		Logger:  logger,
	}
}

// Start bloqueia até o ctx ser cancelado ou o canal de entregas fechar.
func (c *TriggerConsumer) Start(ctx context.Context, queueName string) error {
	msgs, err := c.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	c.Logger.Infof(" [*] Consumidor aguardando gatilhos na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.Logger.Warn("⚠️ Canal de gatilhos fechado")
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

func (c *TriggerConsumer) handle(ctx context.Context, d amqp.Delivery) {
	var req TriggerRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		c.Logger.WithError(err).Error("❌ [CONSUMER] JSON inválido, mandando pra DLQ")
		// Mensagem malformada: sem requeue para não travar a fila.
		d.Nack(false, false)
		return
	}

	c.Logger.WithField("requested_by", req.RequestedBy).Info("📥 [CONSUMER] Gatilho de follow-up recebido")
	c.RunPass(ctx)
	d.Ack(false)
}
