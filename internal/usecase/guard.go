package usecase

import "context"

// OrderGuard answers whether an order already exists for a source invoice id.
//
// This is a read-before-write check, not a transaction: two concurrent
// deliveries of the same invoice can both pass it before either writes.
// Redelivery is rare and almost never concurrent, so the window is accepted.
type OrderGuard struct {
	gateway ERPGateway
}

func NewOrderGuard(gateway ERPGateway) *OrderGuard {
	return &OrderGuard{gateway: gateway}
}

// OrderExists reports whether any order carries invoiceID as its external
// reference. More than one match still just means "exists"; there is no
// dedup repair here.
func (g *OrderGuard) OrderExists(ctx context.Context, invoiceID string) (bool, error) {
	total, err := g.gateway.OrdersByExternalReference(ctx, invoiceID)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
