package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/solarleads/internal/entity"
)

const (
	personalizeTemperature = 0.5
	personalizeMaxTokens   = 150
)

type MessagePersonalizer struct {
	Generator TextGenerator
	Logger    logrus.FieldLogger
}

func NewMessagePersonalizer(generator TextGenerator, logger logrus.FieldLogger) *MessagePersonalizer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MessagePersonalizer{
		Generator: generator,
		Logger:    logger,
	}
}

// Personalize nunca falha: qualquer problema com o LLM devolve o template original.
func (p *MessagePersonalizer) Personalize(ctx context.Context, lead *entity.Lead, templateText string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.WithField("panic", r).Error("❌ Personalização entrou em pânico, usando template")
			out = templateText
		}
	}()

	if p.Generator == nil || lead == nil {
		return templateText
	}

	response, err := p.Generator.Generate(ctx, buildPersonalizationPrompt(lead, templateText), GenerateOptions{
		Temperature: personalizeTemperature,
		MaxTokens:   personalizeMaxTokens,
	})
	if err != nil {
		p.Logger.WithError(err).WithField("phone", lead.Phone).Warn("⚠️ Erro ao personalizar mensagem, usando template")
		return templateText
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return templateText
	}
	return response
}

func buildPersonalizationPrompt(lead *entity.Lead, templateText string) string {
	name := lead.Name
	if strings.TrimSpace(name) == "" {
		name = "Cliente"
	}

	consumo := "não informado"
	if lead.ConsumoKwh != nil {
		consumo = strconv.FormatFloat(*lead.ConsumoKwh, 'f', -1, 64)
	}

	return fmt.Sprintf(`Personalize esta mensagem de follow-up para o lead:

Nome: %s
Consumo: %s kWh
Status: %s

Mensagem template: "%s"

Responda APENAS com a mensagem personalizada, sem explicações.`, name, consumo, lead.Status, templateText)
}
