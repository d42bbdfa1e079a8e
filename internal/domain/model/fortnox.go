package model

// Fortnox customer billing types.
const (
	CustomerTypePrivate = "PRIVATE"
	CustomerTypeCompany = "COMPANY"
)

// Fortnox VAT classifications. SEVAT applies to home-country customers,
// everyone else is EXPORT. Intra-EU is deliberately not a separate case.
const (
	VATTypeDomestic = "SEVAT"
	VATTypeExport   = "EXPORT"
)

const DiscountTypePercent = "PERCENT"

// Customer is the Fortnox customer record as sent to and returned by
// /3/customers. CustomerNumber is set to the Stripe customer id at creation
// time, which is what makes the direct resolver probe the common case.
type Customer struct {
	CustomerNumber       string                `json:"CustomerNumber"`
	Name                 string                `json:"Name"`
	Type                 string                `json:"Type,omitempty"`
	VATType              string                `json:"VATType,omitempty"`
	VATNumber            string                `json:"VATNumber,omitempty"`
	Address1             string                `json:"Address1,omitempty"`
	City                 string                `json:"City,omitempty"`
	ZipCode              string                `json:"ZipCode,omitempty"`
	CountryCode          string                `json:"CountryCode,omitempty"`
	Currency             string                `json:"Currency,omitempty"`
	Email                string                `json:"Email,omitempty"`
	EmailInvoice         string                `json:"EmailInvoice,omitempty"`
	Phone1               string                `json:"Phone1,omitempty"`
	YourReference        string                `json:"YourReference,omitempty"`
	OurReference         string                `json:"OurReference,omitempty"`
	TermsOfPayment       string                `json:"TermsOfPayment,omitempty"`
	DefaultDeliveryTypes *DefaultDeliveryTypes `json:"DefaultDeliveryTypes,omitempty"`
}

type DefaultDeliveryTypes struct {
	Order   string `json:"Order"`
	Invoice string `json:"Invoice"`
}

// Order is the Fortnox order record sent to /3/orders.
// ExternalInvoiceReference1 carries the Stripe invoice id and is the field
// the idempotency lookup searches on.
type Order struct {
	CustomerNumber            string           `json:"CustomerNumber"`
	ExternalInvoiceReference1 string           `json:"ExternalInvoiceReference1"`
	Currency                  string           `json:"Currency,omitempty"`
	Language                  string           `json:"Language"`
	Remarks                   string           `json:"Remarks"`
	CopyRemarks               bool             `json:"CopyRemarks"`
	EmailInformation          EmailInformation `json:"EmailInformation"`
	OrderRows                 []OrderRow       `json:"OrderRows"`
}

type EmailInformation struct {
	EmailAddressFrom string `json:"EmailAddressFrom"`
	EmailAddressBCC  string `json:"EmailAddressBCC"`
	EmailSubject     string `json:"EmailSubject"`
	EmailBody        string `json:"EmailBody"`
}

type OrderRow struct {
	Description       string  `json:"Description"`
	AccountNumber     string  `json:"AccountNumber"`
	ArticleNumber     string  `json:"ArticleNumber"`
	Price             float64 `json:"Price"`
	OrderedQuantity   int64   `json:"OrderedQuantity"`
	DeliveredQuantity int64   `json:"DeliveredQuantity"`
	VAT               int     `json:"VAT"`
	Discount          float64 `json:"Discount"`
	DiscountType      string  `json:"DiscountType"`
}

// Request/response envelopes. Fortnox wraps every entity in a keyed object
// and list responses carry a MetaInformation block.

type CustomerEnvelope struct {
	Customer Customer `json:"Customer"`
}

type OrderEnvelope struct {
	Order Order `json:"Order"`
}

type CustomerListEnvelope struct {
	Customers       []Customer       `json:"Customers"`
	MetaInformation *MetaInformation `json:"MetaInformation"`
}

type OrderListEnvelope struct {
	Orders          []OrderListItem  `json:"Orders"`
	MetaInformation *MetaInformation `json:"MetaInformation"`
}

// OrderListItem is the reduced order representation in list responses.
type OrderListItem struct {
	DocumentNumber            string `json:"DocumentNumber"`
	CustomerNumber            string `json:"CustomerNumber"`
	ExternalInvoiceReference1 string `json:"ExternalInvoiceReference1"`
}

type MetaInformation struct {
	TotalResources int `json:"@TotalResources"`
	TotalPages     int `json:"@TotalPages"`
	CurrentPage    int `json:"@CurrentPage"`
}
