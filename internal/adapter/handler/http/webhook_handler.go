package http

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/flexinets/fortnox-gateway/internal/apperrors"
	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/infrastructure/fortnox"
	"github.com/flexinets/fortnox-gateway/internal/infrastructure/secrets"
	"github.com/flexinets/fortnox-gateway/internal/usecase"
)

// WebhookHandler is the single inbound surface. Stripe's signature
// verification is the authentication mechanism for this endpoint.
type WebhookHandler struct {
	logger        *zap.Logger
	webhookSecret string
	secretStore   secrets.Store
	fortnoxCfg    config.FortnoxConfig
	billing       config.BillingConfig
}

func NewWebhookHandler(logger *zap.Logger, cfg *config.Config, secretStore secrets.Store) *WebhookHandler {
	return &WebhookHandler{
		logger:        logger,
		webhookSecret: cfg.Service.StripeWebhookSecret,
		secretStore:   secretStore,
		fortnoxCfg:    cfg.Fortnox,
		billing:       cfg.Service.Billing,
	}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Error("webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "webhook signature verification failed: " + err.Error(),
		})
	}

	// One correlation id per delivery, carried on every log line below.
	log := h.logger.With(
		zap.String("delivery_id", uuid.NewString()),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Bool("livemode", event.Livemode),
	)
	log.Info("stripe event received")

	// Credentials are scoped to this invocation and selected by the event's
	// live flag; nothing credential-shaped outlives the request.
	creds, err := h.secretStore.Credentials(c.Request().Context(), event.Livemode)
	if err != nil {
		err = apperrors.Wrap(err, "failed to load fortnox credentials")
		log.Error("failed to load fortnox credentials", zap.Error(err))
		return c.JSON(statusFor(err), echo.Map{
			"error": err.Error(),
			"code":  apperrors.CodeOf(err),
		})
	}

	gateway := fortnox.NewClient(
		h.fortnoxCfg.BaseURL,
		creds,
		time.Duration(h.fortnoxCfg.TimeoutSeconds)*time.Second,
		log,
	)
	reconciler := usecase.NewReconciler(gateway, h.billing, log)

	outcome, err := reconciler.Reconcile(c.Request().Context(), &event)
	if err != nil {
		log.Error("reconciliation failed", zap.Error(err), zap.String("code", apperrors.CodeOf(err)))
		return c.JSON(statusFor(err), echo.Map{
			"error": err.Error(),
			"code":  apperrors.CodeOf(err),
		})
	}

	switch outcome.Status {
	case usecase.OutcomeCreated:
		return c.JSONBlob(http.StatusOK, okBody(outcome.Response))
	case usecase.OutcomeSkipped:
		// Unsupported kinds are acknowledged, with the reason in the body.
		return c.JSON(http.StatusOK, echo.Map{
			"status": string(outcome.Status),
			"code":   apperrors.ErrUnsupportedEvent,
			"event":  outcome.EventType,
		})
	default:
		// Duplicate deliveries are acknowledged so Stripe stops retrying.
		return c.JSON(http.StatusOK, echo.Map{
			"status": string(outcome.Status),
			"event":  outcome.EventType,
		})
	}
}

func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrInvalidPayload, apperrors.ErrCustomerNotFound:
		return http.StatusBadRequest
	case apperrors.ErrERPRequestFailed, apperrors.ErrTransportFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// okBody echoes the ERP response body, falling back to a plain ack when the
// ERP returned nothing.
func okBody(response []byte) []byte {
	if len(response) == 0 {
		return []byte(`{"status":"created"}`)
	}
	return response
}
