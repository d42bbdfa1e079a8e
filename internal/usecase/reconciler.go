// Package usecase holds the reconciliation core: mapping Stripe events onto
// Fortnox customers and orders while keeping order creation idempotent per
// source invoice id.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/flexinets/fortnox-gateway/internal/apperrors"
	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/domain/model"
)

type OutcomeStatus string

const (
	// OutcomeCreated means a Fortnox record was created for this event.
	OutcomeCreated OutcomeStatus = "created"
	// OutcomeDuplicate means an order for this invoice id already exists;
	// the delivery is acknowledged without further ERP calls.
	OutcomeDuplicate OutcomeStatus = "duplicate"
	// OutcomeSkipped means the event kind is not handled by this gateway.
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome is the result of reconciling one event. Response carries the raw
// Fortnox response body for created records.
type Outcome struct {
	Status    OutcomeStatus
	EventType string
	Response  []byte
}

// Reconciler dispatches typed Stripe events to customer or invoice handling.
// It performs no I/O itself; side effects are confined to the gateway calls
// made by the handlers.
type Reconciler struct {
	gateway  ERPGateway
	resolver *CustomerResolver
	guard    *OrderGuard
	billing  config.BillingConfig
	logger   *zap.Logger
}

func NewReconciler(gateway ERPGateway, billing config.BillingConfig, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		gateway:  gateway,
		resolver: NewCustomerResolver(gateway, logger),
		guard:    NewOrderGuard(gateway),
		billing:  billing,
		logger:   logger,
	}
}

func (r *Reconciler) Reconcile(ctx context.Context, event *stripe.Event) (Outcome, error) {
	switch event.Type {
	case stripe.EventTypeCustomerCreated:
		return r.handleCustomerCreated(ctx, event)
	case stripe.EventTypeInvoiceCreated:
		return r.handleInvoiceCreated(ctx, event)
	default:
		// Unknown kinds are expected as Stripe evolves; acknowledge them.
		r.logger.Warn("unsupported event type",
			zap.String("type", string(event.Type)),
			zap.String("code", apperrors.ErrUnsupportedEvent),
		)
		return Outcome{Status: OutcomeSkipped, EventType: string(event.Type)}, nil
	}
}

func (r *Reconciler) handleCustomerCreated(ctx context.Context, event *stripe.Event) (Outcome, error) {
	if event.Data == nil {
		return Outcome{}, apperrors.NewAppError(apperrors.ErrInvalidPayload, "event carries no data object", nil)
	}
	var customer model.SourceCustomer
	if err := json.Unmarshal(event.Data.Raw, &customer); err != nil {
		return Outcome{}, apperrors.NewAppError(apperrors.ErrInvalidPayload, "failed to decode customer payload", err)
	}

	response, err := r.gateway.CreateCustomer(ctx, BuildCustomer(&customer, r.billing))
	if err != nil {
		return Outcome{}, err
	}

	r.logger.Info("fortnox customer created", zap.String("customer_number", customer.ID))
	return Outcome{Status: OutcomeCreated, EventType: string(event.Type), Response: response}, nil
}

func (r *Reconciler) handleInvoiceCreated(ctx context.Context, event *stripe.Event) (Outcome, error) {
	if event.Data == nil {
		return Outcome{}, apperrors.NewAppError(apperrors.ErrInvalidPayload, "event carries no data object", nil)
	}
	var invoice model.SourceInvoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return Outcome{}, apperrors.NewAppError(apperrors.ErrInvalidPayload, "failed to decode invoice payload", err)
	}

	r.logger.Info("invoice received",
		zap.String("invoice_id", invoice.ID),
		zap.String("billing_mode", invoice.BillingMode()),
	)

	// The existence check must run before any mutating call. Redelivery of
	// the same invoice id is the normal retry path and must stay a no-op.
	exists, err := r.guard.OrderExists(ctx, invoice.ID)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		r.logger.Info("order already exists, ignoring redelivery", zap.String("invoice_id", invoice.ID))
		return Outcome{Status: OutcomeDuplicate, EventType: string(event.Type)}, nil
	}

	customerNumber, ok := invoice.CustomerOverride()
	if !ok {
		customerNumber, err = r.resolver.ResolveCustomerID(ctx, invoice.Customer)
		if err != nil {
			return Outcome{}, err
		}
	}

	order := BuildOrder(&invoice, customerNumber, r.billing)
	response, err := r.gateway.CreateOrder(ctx, order)
	if err != nil {
		return Outcome{}, err
	}

	r.logger.Info("fortnox order created",
		zap.String("invoice_id", invoice.ID),
		zap.String("customer_number", customerNumber),
	)
	return Outcome{Status: OutcomeCreated, EventType: string(event.Type), Response: response}, nil
}
