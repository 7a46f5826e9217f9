package notify

import (
	"errors"
	"testing"

	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/jonesrussell/gobrief/internal/logger"
)

// mockMessageAPI implements messageAPI for testing.
type mockMessageAPI struct {
	createFunc func(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
	fetchFunc  func(sid string, params *twilioapi.FetchMessageParams) (*twilioapi.ApiV2010Message, error)
}

func (m *mockMessageAPI) CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
	return m.createFunc(params)
}

func (m *mockMessageAPI) FetchMessage(sid string, params *twilioapi.FetchMessageParams) (*twilioapi.ApiV2010Message, error) {
	return m.fetchFunc(sid, params)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSend_AddsWhatsAppPrefix(t *testing.T) {
	t.Parallel()

	var gotFrom, gotTo, gotBody string
	api := &mockMessageAPI{
		createFunc: func(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
			gotFrom = *params.From
			gotTo = *params.To
			gotBody = *params.Body
			return &twilioapi.ApiV2010Message{Sid: strPtr("SM123")}, nil
		},
	}

	n := newWithAPI(api, "+14155238886", logger.NewNoop())

	sid, err := n.Send("+15551234567", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid != "SM123" {
		t.Errorf("expected sid SM123, got %q", sid)
	}
	if gotFrom != "whatsapp:+14155238886" {
		t.Errorf("expected prefixed sender, got %q", gotFrom)
	}
	if gotTo != "whatsapp:+15551234567" {
		t.Errorf("expected prefixed recipient, got %q", gotTo)
	}
	if gotBody != "hello" {
		t.Errorf("expected body to pass through, got %q", gotBody)
	}
}

func TestSend_ProviderError(t *testing.T) {
	t.Parallel()

	api := &mockMessageAPI{
		createFunc: func(*twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
			return nil, errors.New("unreachable")
		},
	}

	n := newWithAPI(api, "+14155238886", logger.NewNoop())

	if _, err := n.Send("+15551234567", "hello"); err == nil {
		t.Fatal("expected error when provider call fails")
	}
}

func TestSend_MissingSid(t *testing.T) {
	t.Parallel()

	api := &mockMessageAPI{
		createFunc: func(*twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
			return &twilioapi.ApiV2010Message{}, nil
		},
	}

	n := newWithAPI(api, "+14155238886", logger.NewNoop())

	if _, err := n.Send("+15551234567", "hello"); err == nil {
		t.Fatal("expected error when provider returns no sid")
	}
}

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	api := &mockMessageAPI{
		fetchFunc: func(sid string, _ *twilioapi.FetchMessageParams) (*twilioapi.ApiV2010Message, error) {
			if sid != "SM123" {
				t.Errorf("expected fetch of SM123, got %q", sid)
			}
			return &twilioapi.ApiV2010Message{Status: strPtr("delivered")}, nil
		},
	}

	n := newWithAPI(api, "+14155238886", logger.NewNoop())

	status, err := n.CheckStatus("SM123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "delivered" {
		t.Errorf("expected status delivered, got %q", status)
	}
}

func TestCheckStatus_WithProviderError(t *testing.T) {
	t.Parallel()

	// An error code on the message is logged, not returned: the
	// message was still accepted by the provider.
	api := &mockMessageAPI{
		fetchFunc: func(string, *twilioapi.FetchMessageParams) (*twilioapi.ApiV2010Message, error) {
			return &twilioapi.ApiV2010Message{
				Status:       strPtr("undelivered"),
				ErrorCode:    intPtr(63016),
				ErrorMessage: strPtr("failed to send freeform message"),
			}, nil
		},
	}

	n := newWithAPI(api, "+14155238886", logger.NewNoop())

	status, err := n.CheckStatus("SM123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "undelivered" {
		t.Errorf("expected status undelivered, got %q", status)
	}
}
