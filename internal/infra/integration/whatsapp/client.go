package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrNotConfigured = errors.New("whatsapp não configurado")

// Client fala com o serviço de sessão do WhatsApp (pareamento e reconexão ficam lá).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) SendText(ctx context.Context, phone, text string) error {
	if c.baseURL == "" {
		c.logger.Warn("⚠️ WhatsApp: WHATSAPP_SERVICE_URL não configurado")
		return ErrNotConfigured
	}

	body, err := json.Marshal(SendMessageInput{To: phone, Message: text})
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao enviar mensagem: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp api error: %d - %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("whatsapp: erro ao parsear resposta: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("whatsapp: envio recusado: %s", result.Error)
	}

	c.logger.WithField("phone", phone).Debug("✅ WhatsApp: Mensagem enviada")
	return nil
}

func (c *Client) Status(ctx context.Context) (*ConnectionStatus, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp health: status %d", resp.StatusCode)
	}

	var status ConnectionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
