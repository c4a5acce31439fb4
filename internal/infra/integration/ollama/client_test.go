package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/solarleads/internal/usecase"
)

const host = "http://ollama.local:11434"

func TestGenerate(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", host+"/api/generate",
		func(req *http.Request) (*http.Response, error) {
			var in GenerateRequest
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				return httpmock.NewStringResponse(400, ""), nil
			}
			assert.Equal(t, "llama2", in.Model)
			assert.False(t, in.Stream)
			assert.Equal(t, 0.5, in.Options.Temperature)
			assert.Equal(t, 150, in.Options.NumPredict)
			return httpmock.NewJsonResponse(200, GenerateResponse{Model: in.Model, Response: "Oi Maria!", Done: true})
		})

	c := NewClient(host, "llama2", 5*time.Second)
	out, err := c.Generate(context.Background(), "prompt", usecase.GenerateOptions{Temperature: 0.5, MaxTokens: 150})

	require.NoError(t, err)
	assert.Equal(t, "Oi Maria!", out)
}

func TestGenerateUnavailable(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", host+"/api/generate",
		httpmock.NewStringResponder(404, `{"error":"model 'llama2' not found"}`))

	_, err := NewClient(host, "llama2", time.Second).Generate(context.Background(), "p", usecase.GenerateOptions{})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "not found")
}

func TestGenerateErrorField(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", host+"/api/generate",
		httpmock.NewStringResponder(200, `{"error":"out of memory"}`))

	_, err := NewClient(host, "llama2", time.Second).Generate(context.Background(), "p", usecase.GenerateOptions{})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheckStatus(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", host+"/api/tags", httpmock.NewStringResponder(200, `{"models":[]}`))
	st := NewClient(host, "llama2", time.Second).CheckStatus(context.Background())
	assert.Equal(t, Status{Available: true, Model: "llama2"}, st)

	httpmock.RegisterResponder("GET", host+"/api/tags", httpmock.NewStringResponder(503, ""))
	st = NewClient(host, "llama2", time.Second).CheckStatus(context.Background())
	assert.False(t, st.Available)
	assert.Equal(t, "status 503", st.Error)
}
