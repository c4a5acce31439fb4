package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/solarleads/internal/infra/queue"
	"github.com/xavierca1/solarleads/internal/usecase"
)

type PassRunner interface {
	RunNow(ctx context.Context) usecase.PassResult
}

type TriggerPublisher interface {
	PublishTrigger(ctx context.Context, req queue.TriggerRequest) error
}

type FollowUpHandler struct {
	runner      PassRunner
	publisher   TriggerPublisher // opcional: habilita ?async=true
	rateLimiter *RateLimiter
}

func NewFollowUpHandler(runner PassRunner, publisher TriggerPublisher) *FollowUpHandler {
	return &FollowUpHandler{
		runner:      runner,
		publisher:   publisher,
		rateLimiter: NewRateLimiter(5, time.Minute), // 5 passadas manuais/min por IP
	}
}

type TriggerResponse struct {
	Message string              `json:"message"`
	Result  *usecase.PassResult `json:"result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Trigger roda uma passada completa e responde quando ela termina.
// Com ?async=true só enfileira o pedido no RabbitMQ.
func (h *FollowUpHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Muitas requisições, tente novamente mais tarde"})
		return
	}

	if r.URL.Query().Get("async") == "true" {
		if h.publisher == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Fila de follow-up não configurada"})
			return
		}
		req := queue.TriggerRequest{RequestedBy: getClientIP(r), RequestedAt: time.Now()}
		if err := h.publisher.PublishTrigger(r.Context(), req); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Erro ao enfileirar follow-ups"})
			return
		}
		writeJSON(w, http.StatusAccepted, TriggerResponse{Message: "Follow-ups enfileirados"})
		return
	}

	// A passada cobre todos os leads mesmo se o cliente desconectar no meio.
	result := h.runner.RunNow(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusOK, TriggerResponse{
		Message: "Follow-ups processados com sucesso",
		Result:  &result,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
