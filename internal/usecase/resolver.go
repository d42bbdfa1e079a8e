package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/flexinets/fortnox-gateway/internal/apperrors"
)

// CustomerResolver maps a Stripe customer id onto a Fortnox customer number.
//
// Customer numbers are assigned equal to the Stripe id at creation time, so a
// direct probe is the common case. Numbers can diverge through manual edits
// or migrations in Fortnox; for those customers the Stripe id lives in the
// phone field, the only writable, searchable field Fortnox has left for an
// external reference.
type CustomerResolver struct {
	gateway ERPGateway
	logger  *zap.Logger
}

func NewCustomerResolver(gateway ERPGateway, logger *zap.Logger) *CustomerResolver {
	return &CustomerResolver{gateway: gateway, logger: logger}
}

func (r *CustomerResolver) ResolveCustomerID(ctx context.Context, sourceCustomerID string) (string, error) {
	_, found, err := r.gateway.GetCustomerByNumber(ctx, sourceCustomerID)
	if err != nil {
		return "", err
	}
	if found {
		return sourceCustomerID, nil
	}

	r.logger.Info("customer number probe missed, searching by phone field",
		zap.String("stripe_customer_id", sourceCustomerID))

	matches, err := r.gateway.SearchCustomersByPhone(ctx, sourceCustomerID)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", apperrors.NewAppError(
			apperrors.ErrCustomerNotFound,
			fmt.Sprintf("no unique fortnox customer for stripe customer %s (%d phone matches)", sourceCustomerID, len(matches)),
			nil,
		)
	}
	return matches[0].CustomerNumber, nil
}
