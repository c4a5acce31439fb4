package ollama

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

	"github.com/xavierca1/solarleads/internal/usecase"
)

// ErrUnavailable: o serviço de IA não respondeu ou respondeu com erro.
var ErrUnavailable = errors.New("serviço de IA não disponível")

type Client struct {
	host       string
	model      string
	httpClient *http.Client
}

func NewClient(host, model string, timeout time.Duration) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts usecase.GenerateOptions) (string, error) {
	payload := GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: GenerateOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d - %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result GenerateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: resposta inválida: %v", ErrUnavailable, err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, result.Error)
	}

	return result.Response, nil
}

// CheckStatus consulta /api/tags; nunca devolve erro, só o status.
func (c *Client) CheckStatus(ctx context.Context) Status {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return Status{Available: false, Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Status{Available: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Status{Available: false, Error: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return Status{Available: true, Model: c.model}
}
