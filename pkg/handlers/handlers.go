package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
	"github.com/rhandyus/senjagames-sub001/pkg/signature"
	"github.com/rhandyus/senjagames-sub001/pkg/snap"
)

var callbackOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "senjagames",
		Name:      "payment_callback_outcomes_total",
		Help:      "Terminal outcomes of processed payment callbacks",
	},
	[]string{"outcome"},
)

// requiredHeaders must all be present before any trust decision is made.
var requiredHeaders = []string{
	snap.HeaderTimestamp,
	snap.HeaderPartnerID,
	snap.HeaderSignature,
	snap.HeaderExternalID,
}

// WebhookHandler is the HTTP boundary for the payment processor's callback.
// It holds the verification and settlement dependencies.
type WebhookHandler struct {
	Verifier *signature.Verifier
	Engine   *settlement.Engine
	Logger   *slog.Logger

	validate *validator.Validate
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(verifier *signature.Verifier, engine *settlement.Engine, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		Verifier: verifier,
		Engine:   engine,
		Logger:   logger,
		validate: validator.New(),
	}
}

// Mount registers the callback route on the router.
func (h *WebhookHandler) Mount(r chi.Router) {
	r.Post(snap.CallbackPath, h.PaymentCallback)
}

// PaymentCallback handles one inbound payment notification: header
// completeness, signature verification, then settlement. Cheap structural
// checks run before any cryptographic work or store access.
func (h *WebhookHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	for _, name := range requiredHeaders {
		if r.Header.Get(name) == "" {
			h.respond(w, settlement.OutcomeMissingHeaders)
			return
		}
	}

	// The raw bytes are what the processor signed; they must reach the
	// verifier untouched.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read callback body", slog.Any("error", err))
		h.respond(w, settlement.OutcomeInternalError)
		return
	}

	timestamp := r.Header.Get(snap.HeaderTimestamp)
	supplied := r.Header.Get(snap.HeaderSignature)
	if !h.Verifier.Verify(http.MethodPost, snap.CallbackPath, body, timestamp, supplied) {
		h.respond(w, settlement.OutcomeInvalidSignature)
		return
	}

	var payload snap.CallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.respond(w, settlement.OutcomeMissingHeaders)
		return
	}
	if err := h.validate.Struct(&payload); err != nil {
		h.respond(w, settlement.OutcomeMissingHeaders)
		return
	}

	req := snap.ToSettlementRequest(&payload, r.Header)
	outcome := h.Engine.Settle(r.Context(), req)
	h.respond(w, outcome)
}

func (h *WebhookHandler) respond(w http.ResponseWriter, outcome settlement.Outcome) {
	callbackOutcomes.WithLabelValues(string(outcome)).Inc()
	snap.WriteOutcome(w, outcome)
}
