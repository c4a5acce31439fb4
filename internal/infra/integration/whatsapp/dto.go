package whatsapp

type SendMessageInput struct {
	To      string `json:"to"`      // Ex: "5511999999999"
	Message string `json:"message"` // texto puro
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	To      string `json:"to"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// ConnectionStatus vem do GET /health do serviço de WhatsApp.
type ConnectionStatus struct {
	Status   string `json:"status"`
	WhatsApp struct {
		IsConnected bool   `json:"isConnected"`
		QR          string `json:"qr,omitempty"`
	} `json:"whatsapp"`
}
