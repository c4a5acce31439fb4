package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/solarleads/internal/infra/integration/ollama"
	"github.com/xavierca1/solarleads/internal/infra/integration/whatsapp"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type ConnectionChecker interface {
	IsClosed() bool
}

type LLMStatusChecker interface {
	CheckStatus(ctx context.Context) ollama.Status
}

type WhatsAppStatusChecker interface {
	Status(ctx context.Context) (*whatsapp.ConnectionStatus, error)
}

// HealthHandler: dependências nil aparecem como "not configured".
type HealthHandler struct {
	DB        Pinger
	RabbitMQ  ConnectionChecker
	LLM       LLMStatusChecker
	WhatsApp  WhatsAppStatusChecker
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ ConnectionChecker, llm LLMStatusChecker, wa WhatsAppStatusChecker) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		LLM:       llm,
		WhatsApp:  wa,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// LLM e WhatsApp fora do ar degradam o follow-up mas não derrubam o serviço:
	// a personalização cai no template e o envio é reavaliado na próxima passada.
	if h.LLM != nil {
		if st := h.LLM.CheckStatus(ctx); st.Available {
			deps["ollama"] = "healthy"
		} else {
			deps["ollama"] = "unavailable: " + st.Error
		}
	} else {
		deps["ollama"] = "not configured"
	}

	if h.WhatsApp != nil {
		st, err := h.WhatsApp.Status(ctx)
		switch {
		case err != nil:
			deps["whatsapp"] = fmt.Sprintf("unavailable: %v", err)
		case !st.WhatsApp.IsConnected:
			deps["whatsapp"] = "unavailable: session disconnected"
		default:
			deps["whatsapp"] = "healthy"
		}
	} else {
		deps["whatsapp"] = "not configured"
	}

	status := "healthy"
	for name, v := range deps {
		if name != "database" && name != "rabbitmq" {
			continue
		}
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
