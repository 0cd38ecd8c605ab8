package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SignatureHeader carries the gateway's HMAC of the raw webhook body.
const SignatureHeader = "X-Razorpay-Signature"

// Webhook event names the service acts on. Everything else is
// acknowledged and ignored.
const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
	EventPaymentLinkPaid = "payment_link.paid"
	EventPaymentFailed   = "payment.failed"
	EventRefundProcessed = "refund.processed"
)

type entity struct {
	ID    string            `json:"id"`
	Notes map[string]string `json:"notes"`
}

type Event struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity entity `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity entity `json:"entity"`
		} `json:"order"`
		PaymentLink struct {
			Entity entity `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

// Notes returns the note map of whichever entity the event carries.
func (e *Event) Notes() map[string]string {
	switch e.Event {
	case EventOrderPaid:
		return e.Payload.Order.Entity.Notes
	case EventPaymentLinkPaid:
		return e.Payload.PaymentLink.Entity.Notes
	default:
		return e.Payload.Payment.Entity.Notes
	}
}

// VerifySignature checks the hex HMAC-SHA256 of body against the shared
// webhook secret using a constant-time compare.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature a gateway would attach to body. Used by tests.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
