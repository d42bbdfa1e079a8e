package model

import (
	"strings"
	"time"
)

// Billing modes carried on a Stripe invoice.
const (
	BillingChargeAutomatically = "charge_automatically"
	BillingSendInvoice         = "send_invoice"
)

// Metadata keys honored on source entities. Lookups are optional: absence of
// a key is never an error.
const (
	MetadataCompanyName       = "CompanyName"
	MetadataFortnoxCustomerID = "FortnoxCustomerId"
)

// SourceCustomer is the trimmed Stripe customer payload as delivered inside
// a customer.created event. Parsed once at the webhook boundary; everything
// downstream works on these checked fields.
type SourceCustomer struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Shipping SourceShipping    `json:"shipping"`
	TaxInfo  *SourceTaxInfo    `json:"tax_info"`
	Metadata map[string]string `json:"metadata"`
}

type SourceShipping struct {
	Name    string        `json:"name"`
	Address SourceAddress `json:"address"`
}

type SourceAddress struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type SourceTaxInfo struct {
	TaxID string `json:"tax_id"`
}

// CompanyName returns the metadata company-name override, if present and
// non-empty.
func (c *SourceCustomer) CompanyName() (string, bool) {
	name, ok := c.Metadata[MetadataCompanyName]
	if !ok || strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

// TaxID returns the customer's VAT number if one was captured.
func (c *SourceCustomer) TaxID() string {
	if c.TaxInfo == nil {
		return ""
	}
	return c.TaxInfo.TaxID
}

// SourceInvoice is the trimmed Stripe invoice payload as delivered inside an
// invoice.created event. Its ID is stable across redeliveries and serves as
// the idempotency key.
type SourceInvoice struct {
	ID               string            `json:"id"`
	Customer         string            `json:"customer"`
	CollectionMethod string            `json:"collection_method"`
	Billing          string            `json:"billing"`
	Currency         string            `json:"currency"`
	TaxPercent       *float64          `json:"tax_percent"`
	Created          int64             `json:"created"`
	Date             int64             `json:"date"`
	Lines            SourceLineList    `json:"lines"`
	Discount         *SourceDiscount   `json:"discount"`
	Metadata         map[string]string `json:"metadata"`
}

type SourceLineList struct {
	Data []SourceLine `json:"data"`
}

// SourceLine is one invoice line item. Amount is in minor currency units.
type SourceLine struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    *int64 `json:"quantity"`
}

type SourceDiscount struct {
	Coupon *SourceCoupon `json:"coupon"`
}

type SourceCoupon struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PercentOff *float64 `json:"percent_off"`
}

// BillingMode normalizes the billing mode. The service was originally built
// against the API version that named the field "billing"; replays of old
// events still carry that name, newer ones carry collection_method.
func (i *SourceInvoice) BillingMode() string {
	if i.CollectionMethod != "" {
		return i.CollectionMethod
	}
	return i.Billing
}

// IssuedAt returns the invoice creation time, preferring the legacy date
// field when present.
func (i *SourceInvoice) IssuedAt() time.Time {
	epoch := i.Date
	if epoch == 0 {
		epoch = i.Created
	}
	return time.Unix(epoch, 0).UTC()
}

// CustomerOverride returns the explicit Fortnox customer number carried in
// metadata, if any. It takes precedence over resolution.
func (i *SourceInvoice) CustomerOverride() (string, bool) {
	id, ok := i.Metadata[MetadataFortnoxCustomerID]
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// PercentOff returns the invoice-level discount percentage, or 0 if the
// invoice carries no percent-off coupon.
func (i *SourceInvoice) PercentOff() (float64, bool) {
	if i.Discount == nil || i.Discount.Coupon == nil || i.Discount.Coupon.PercentOff == nil {
		return 0, false
	}
	return *i.Discount.Coupon.PercentOff, true
}
