package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

type WebhookHandler struct {
	service booking.Service
	secret  []byte
	logger  *slog.Logger
}

// NewWebhookHandler creates the payment gateway callback handler. An empty
// secret disables the endpoint.
func NewWebhookHandler(service booking.Service, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, secret: []byte(secret), logger: logger}
}

// Sign returns the signature the gateway is expected to send for body.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *WebhookHandler) verify(body []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// Payment handles POST /payments/webhook.
func (h *WebhookHandler) Payment(c *gin.Context) {
	if len(h.secret) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment webhook is not configured"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "failed to read body", err)
		return
	}

	if !h.verify(body, c.GetHeader(SignatureHeader)) {
		h.logger.WarnContext(c.Request.Context(), "rejected payment webhook with bad signature",
			"request_id", c.GetString("request_id"), "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var req PaymentWebhookRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	// Only successful payments change state.
	if req.Status != string(booking.StatusPaid) {
		c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), req.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
