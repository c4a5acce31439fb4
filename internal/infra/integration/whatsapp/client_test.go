package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://whatsapp.local:3006"

func TestSendTextSuccess(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/send",
		func(req *http.Request) (*http.Response, error) {
			var in SendMessageInput
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				return httpmock.NewStringResponse(400, `{"error":"bad json"}`), nil
			}
			assert.Equal(t, "5511999990001", in.To)
			assert.Equal(t, "Olá!", in.Message)
			return httpmock.NewJsonResponse(200, SendMessageResponse{Success: true, To: in.To, Message: "Mensagem enviada com sucesso"})
		})

	c := NewClient(baseURL+"/", 5*time.Second, logrus.New())
	err := c.SendText(context.Background(), "5511999990001", "Olá!")

	assert.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSendTextServerError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/send",
		httpmock.NewStringResponder(500, `{"error":"Erro ao enviar mensagem","details":"not connected"}`))

	err := NewClient(baseURL, 5*time.Second, logrus.New()).SendText(context.Background(), "5511999990001", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "not connected")
}

func TestSendTextRejected(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/send",
		httpmock.NewStringResponder(200, `{"success":false,"error":"número inválido"}`))

	err := NewClient(baseURL, 5*time.Second, logrus.New()).SendText(context.Background(), "5511999990001", "x")

	assert.ErrorContains(t, err, "número inválido")
}

func TestSendTextNotConfigured(t *testing.T) {
	err := NewClient("", time.Second, nil).SendText(context.Background(), "5511999990001", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStatus(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/health",
		httpmock.NewStringResponder(200, `{"status":"ok","whatsapp":{"isConnected":true}}`))

	st, err := NewClient(baseURL, time.Second, nil).Status(context.Background())

	require.NoError(t, err)
	assert.True(t, st.WhatsApp.IsConnected)
}
