package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/solarleads/internal/entity"
	"github.com/xavierca1/solarleads/internal/infra/queue"
)

const DefaultLeadTimeout = 30 * time.Second

type leadOutcome int

const (
	outcomeSkipped leadOutcome = iota // sem histórico ou sem telefone
	outcomeNoRule
	outcomeFired
	outcomeFailed
	outcomeLocked
)

type LeadFailure struct {
	LeadID string `json:"lead_id"`
	Phone  string `json:"phone"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// PassResult resume uma passada. Falhas por lead ficam aqui, nunca viram erro da passada.
type PassResult struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Rules      int           `json:"rules"`
	Leads      int           `json:"leads"`
	Skipped    int           `json:"skipped"`
	Fired      int           `json:"fired"`
	Failed     int           `json:"failed"`
	Locked     int           `json:"locked"`
	ListError  string        `json:"list_error,omitempty"`
	Failures   []LeadFailure `json:"failures,omitempty"`
}

type FollowUpUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	MessageRepo  entity.MessageRepositoryInterface
	Rules        RuleProvider
	Personalizer Personalizer
	Gateway      ChannelGateway

	// Opcionais
	Locker   LeadLocker
	Events   EventPublisher
	Recorder PassRecorder

	Clock       Clock
	Logger      logrus.FieldLogger
	LeadTimeout time.Duration
	Concurrency int
}

func NewFollowUpUseCase(
	leadRepo entity.LeadRepositoryInterface,
	messageRepo entity.MessageRepositoryInterface,
	rules RuleProvider,
	personalizer Personalizer,
	gateway ChannelGateway,
	logger logrus.FieldLogger,
) *FollowUpUseCase {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FollowUpUseCase{
		LeadRepo:     leadRepo,
		MessageRepo:  messageRepo,
		Rules:        rules,
		Personalizer: personalizer,
		Gateway:      gateway,
		Clock:        time.Now,
		Logger:       logger,
		LeadTimeout:  DefaultLeadTimeout,
		Concurrency:  1,
	}
}

// RunPass varre todos os leads e dispara no máximo um follow-up por lead.
// Sempre completa: erros de um lead são logados e não afetam os próximos.
func (uc *FollowUpUseCase) RunPass(ctx context.Context) PassResult {
	result := PassResult{StartedAt: uc.Clock()}
	uc.Logger.Info("🤖 Verificando follow-ups pendentes...")

	rules, err := uc.Rules.Rules(ctx)
	if err != nil {
		uc.Logger.WithError(err).Error("❌ Erro ao carregar regras de follow-up")
	}
	result.Rules = len(rules)

	leads, err := uc.LeadRepo.ListAll(ctx)
	if err != nil {
		uc.Logger.WithError(err).Error("❌ Erro ao verificar follow-ups: falha ao listar leads")
		result.ListError = err.Error()
		return uc.finish(result)
	}
	result.Leads = len(leads)

	if len(rules) == 0 || len(leads) == 0 {
		return uc.finish(result)
	}

	outcomes := make([]leadOutcome, len(leads))
	errs := make([]error, len(leads))

	if uc.Concurrency <= 1 {
		for i, lead := range leads {
			outcomes[i], errs[i] = uc.safeProcessLead(ctx, lead, rules)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(uc.Concurrency)
		for i, lead := range leads {
			i, lead := i, lead
			g.Go(func() error {
				outcomes[i], errs[i] = uc.safeProcessLead(ctx, lead, rules)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, outcome := range outcomes {
		switch outcome {
		case outcomeSkipped:
			result.Skipped++
		case outcomeFired:
			result.Fired++
		case outcomeLocked:
			result.Locked++
		case outcomeFailed:
			result.Failed++
			failure := LeadFailure{Code: ErrorCode(errs[i])}
			if leads[i] != nil {
				failure.LeadID = leads[i].ID
				failure.Phone = leads[i].Phone
			}
			if errs[i] != nil {
				failure.Error = errs[i].Error()
			}
			result.Failures = append(result.Failures, failure)
		}
	}

	return uc.finish(result)
}

func (uc *FollowUpUseCase) finish(result PassResult) PassResult {
	result.FinishedAt = uc.Clock()
	if uc.Recorder != nil {
		uc.Recorder.RecordPass(result)
	}
	uc.Logger.WithFields(logrus.Fields{
		"leads":   result.Leads,
		"fired":   result.Fired,
		"failed":  result.Failed,
		"skipped": result.Skipped,
		"locked":  result.Locked,
	}).Info("✅ Passada de follow-up concluída")
	return result
}

func (uc *FollowUpUseCase) safeProcessLead(ctx context.Context, lead *entity.Lead, rules []entity.FollowUpRule) (outcome leadOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = outcomeFailed
			err = fmt.Errorf("panic processing lead: %v", r)
		}
	}()

	if uc.LeadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.LeadTimeout)
		defer cancel()
	}

	outcome, err = uc.processLead(ctx, lead, rules)
	if err != nil && outcome == outcomeFailed {
		log := uc.Logger.WithError(err).WithField("code", ErrorCode(err))
		if lead != nil {
			log = log.WithFields(logrus.Fields{"lead_id": lead.ID, "phone": lead.Phone})
		}
		log.Error("❌ Erro ao processar follow-up do lead")
	}
	return outcome, err
}

func (uc *FollowUpUseCase) processLead(ctx context.Context, lead *entity.Lead, rules []entity.FollowUpRule) (leadOutcome, error) {
	if lead == nil || strings.TrimSpace(lead.Phone) == "" {
		uc.Logger.WithField("lead", lead).Warn("⚠️ Lead sem telefone, ignorando")
		return outcomeSkipped, nil
	}

	if uc.Locker != nil {
		release, err := uc.Locker.Acquire(ctx, lead.ID)
		switch {
		case errors.Is(err, ErrLeadLocked):
			uc.Logger.WithField("lead_id", lead.ID).Info("🔒 Lead já em processamento por outra passada")
			return outcomeLocked, nil
		case err != nil:
			// Lock é consultivo: sem redis, segue sem ele.
			uc.Logger.WithError(err).WithField("lead_id", lead.ID).Warn("⚠️ Falha ao obter lock do lead, seguindo sem lock")
		default:
			defer release()
		}
	}

	messages, err := uc.MessageRepo.ListByPhone(ctx, lead.Phone)
	if err != nil {
		return outcomeFailed, &TechnicalError{Code: CodeHistoryFetch, Message: "falha ao buscar conversa", Err: err}
	}
	if len(messages) == 0 {
		return outcomeSkipped, nil
	}

	last := messages[len(messages)-1]
	hoursSince := uc.Clock().Sub(last.CreatedAt).Hours()

	rule, ok := firstFiring(rules, lead, last, hoursSince)
	if !ok {
		return outcomeNoRule, nil
	}

	return uc.dispatch(ctx, lead, rule)
}

// dispatch: personaliza, envia, registra. Só a falha no envio conta como falha do lead.
func (uc *FollowUpUseCase) dispatch(ctx context.Context, lead *entity.Lead, rule entity.FollowUpRule) (leadOutcome, error) {
	log := uc.Logger.WithFields(logrus.Fields{
		"lead_id": lead.ID,
		"phone":   lead.Phone,
		"rule_id": rule.ID,
		"trigger": rule.Trigger,
	})

	text := rule.Message
	if uc.Personalizer != nil {
		text = uc.Personalizer.Personalize(ctx, lead, rule.Message)
	}

	if err := uc.Gateway.SendText(ctx, lead.Phone, text); err != nil {
		uc.recordDispatch(rule.ID, "failed")
		return outcomeFailed, &TechnicalError{Code: CodeGatewaySendFailed, Message: "falha ao enviar follow-up", Err: err}
	}

	if err := uc.MessageRepo.Append(ctx, lead.Phone, text, entity.DirectionOutbound, entity.MessageStatusSent); err != nil {
		log.WithError(err).Warn("⚠️ Follow-up enviado, mas não foi registrado na conversa")
	}

	if uc.Events != nil {
		event := queue.FollowUpSentEvent{
			EventID: uuid.New().String(),
			LeadID:  lead.ID,
			Phone:   lead.Phone,
			RuleID:  rule.ID,
			Trigger: string(rule.Trigger),
			Message: text,
			SentAt:  uc.Clock(),
		}
		if err := uc.Events.PublishFollowUpSent(ctx, event); err != nil {
			log.WithError(err).Warn("⚠️ Follow-up enviado, mas o evento não foi publicado")
		}
	}

	uc.recordDispatch(rule.ID, "sent")
	log.Info("✅ Follow-up enviado")
	return outcomeFired, nil
}

func (uc *FollowUpUseCase) recordDispatch(ruleID, outcome string) {
	if uc.Recorder != nil {
		uc.Recorder.RecordDispatch(ruleID, outcome)
	}
}
