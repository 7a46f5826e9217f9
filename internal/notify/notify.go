// Package notify delivers briefing messages over WhatsApp via the
// Twilio REST API.
package notify

import (
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/jonesrussell/gobrief/internal/config"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// whatsappPrefix is prepended to sender and recipient numbers, as the
// Twilio WhatsApp channel requires.
const whatsappPrefix = "whatsapp:"

// Interface defines the delivery operations the pipeline needs.
type Interface interface {
	// Send delivers one message and returns the provider message SID.
	Send(to, body string) (string, error)
	// CheckStatus fetches the delivery status for a previously sent message.
	CheckStatus(sid string) (string, error)
}

// messageAPI is the slice of the Twilio client the notifier uses.
// Satisfied by *twilioapi.ApiService and mocked in tests.
type messageAPI interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
	FetchMessage(sid string, params *twilioapi.FetchMessageParams) (*twilioapi.ApiV2010Message, error)
}

// WhatsAppNotifier sends messages through Twilio's WhatsApp channel.
type WhatsAppNotifier struct {
	api    messageAPI
	from   string
	logger logger.Interface
}

// Ensure WhatsAppNotifier implements Interface.
var _ Interface = (*WhatsAppNotifier)(nil)

// New creates a Twilio-backed WhatsApp notifier.
func New(cfg config.TwilioConfig, log logger.Interface) *WhatsAppNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &WhatsAppNotifier{
		api:    client.Api,
		from:   cfg.FromNumber,
		logger: log.WithComponent("notify"),
	}
}

// newWithAPI wires a notifier onto an existing message API. Used in tests.
func newWithAPI(api messageAPI, from string, log logger.Interface) *WhatsAppNotifier {
	return &WhatsAppNotifier{api: api, from: from, logger: log.WithComponent("notify")}
}

// Send delivers one message and returns the provider message SID.
func (n *WhatsAppNotifier) Send(to, body string) (string, error) {
	masked := MaskNumber(to)
	n.logger.Info("Sending message", "to", masked)

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(whatsappPrefix + n.from)
	params.SetTo(whatsappPrefix + to)
	params.SetBody(body)

	msg, err := n.api.CreateMessage(params)
	if err != nil {
		n.logger.Error("Failed to send message", "to", masked, "error", err)
		return "", fmt.Errorf("send message to %s: %w", masked, err)
	}

	if msg.Sid == nil || *msg.Sid == "" {
		return "", errors.New("provider returned no message sid")
	}

	n.logger.Info("Message sent successfully", "to", masked, "sid", *msg.Sid)
	return *msg.Sid, nil
}

// CheckStatus fetches the delivery status for a previously sent
// message and logs any provider error code attached to it.
func (n *WhatsAppNotifier) CheckStatus(sid string) (string, error) {
	msg, err := n.api.FetchMessage(sid, &twilioapi.FetchMessageParams{})
	if err != nil {
		n.logger.Error("Failed to check message status", "sid", sid, "error", err)
		return "", fmt.Errorf("fetch message %s: %w", sid, err)
	}

	status := ""
	if msg.Status != nil {
		status = *msg.Status
	}
	n.logger.Info("Message status", "sid", sid, "status", status)

	if msg.ErrorCode != nil && *msg.ErrorCode != 0 {
		errMsg := ""
		if msg.ErrorMessage != nil {
			errMsg = *msg.ErrorMessage
		}
		n.logger.Warn("Message has provider error",
			"sid", sid,
			"error_code", *msg.ErrorCode,
			"error_message", errMsg)
	}

	return status, nil
}
