package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/solarleads/internal/entity"
	"github.com/xavierca1/solarleads/internal/infra/queue"
)

// ChannelGateway entrega texto puro para o telefone do lead (serviço de WhatsApp).
type ChannelGateway interface {
	SendText(ctx context.Context, phone, text string) error
}

type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// TextGenerator é o LLM local. Tratado como não confiável.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type Personalizer interface {
	Personalize(ctx context.Context, lead *entity.Lead, templateText string) string
}

// RuleProvider é consultado no início de cada passada.
type RuleProvider interface {
	Rules(ctx context.Context) ([]entity.FollowUpRule, error)
}

// LeadLocker é o lock consultivo por lead; release deve ser chamado ao fim do processamento.
type LeadLocker interface {
	Acquire(ctx context.Context, leadID string) (release func(), err error)
}

type EventPublisher interface {
	PublishFollowUpSent(ctx context.Context, event queue.FollowUpSentEvent) error
}

// PassRecorder recebe as métricas da passada (prometheus em produção).
type PassRecorder interface {
	RecordPass(result PassResult)
	RecordDispatch(ruleID, outcome string)
}

type Clock func() time.Time
