package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coopworks/api-membership/internal/utils"
)

// SMSSender dispatches one text message to a recipient.
type SMSSender interface {
	Send(recipient, message string) error
}

// GatewaySMS posts messages to the third-party SMS gateway configured via
// SMS_GATEWAY_URL and SMS_SENDER_ID.
type GatewaySMS struct {
	URL      string
	SenderID string
	Client   *http.Client
}

func NewGatewaySMS() *GatewaySMS {
	return &GatewaySMS{
		URL:      os.Getenv("SMS_GATEWAY_URL"),
		SenderID: os.Getenv("SMS_SENDER_ID"),
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type gatewayRequest struct {
	SenderID  string `json:"sender_id"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type gatewayResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Send posts the message and decodes the gateway's success flag. Any
// transport or gateway-side failure comes back as ErrExternalService.
func (g *GatewaySMS) Send(recipient, message string) error {
	if g.URL == "" {
		return fmt.Errorf("%w: SMS gateway not configured", utils.ErrExternalService)
	}

	body, _ := json.Marshal(gatewayRequest{
		SenderID:  g.SenderID,
		Recipient: recipient,
		Message:   message,
	})

	resp, err := g.Client.Post(g.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrExternalService, err)
	}
	defer resp.Body.Close()

	var out gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: malformed gateway response", utils.ErrExternalService)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", utils.ErrExternalService, out.Error)
	}
	return nil
}
