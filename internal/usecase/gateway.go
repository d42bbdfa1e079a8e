package usecase

import (
	"context"

	"github.com/flexinets/fortnox-gateway/internal/domain/model"
)

// ERPGateway is the Fortnox surface the reconciliation core depends on.
// Implemented by infrastructure/fortnox.Client.
type ERPGateway interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) ([]byte, error)
	CreateOrder(ctx context.Context, order *model.Order) ([]byte, error)
	GetCustomerByNumber(ctx context.Context, customerNumber string) (*model.Customer, bool, error)
	SearchCustomersByPhone(ctx context.Context, phone string) ([]model.Customer, error)
	OrdersByExternalReference(ctx context.Context, reference string) (int, error)
}
