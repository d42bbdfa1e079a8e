package usecase

import (
	"strings"

	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/domain/model"
)

// BuildCustomer maps a Stripe customer onto a Fortnox customer record.
// The Stripe id becomes the customer number so later invoices can resolve
// the customer by a direct number probe.
//
// Calling this twice for the same customer produces two create calls; Fortnox
// rejects the duplicate number. There is no guard at this layer.
func BuildCustomer(customer *model.SourceCustomer, billing config.BillingConfig) *model.Customer {
	vatType := model.VATTypeExport
	if strings.EqualFold(customer.Shipping.Address.Country, billing.HomeCountry) {
		vatType = model.VATTypeDomestic
	}
	// EU intra-community VAT is an open product question; no third category.

	name := customer.Shipping.Name
	customerType := model.CustomerTypePrivate
	if companyName, ok := customer.CompanyName(); ok {
		name = companyName
		customerType = model.CustomerTypeCompany
	}

	return &model.Customer{
		CustomerNumber: customer.ID,
		Name:           name,
		Type:           customerType,
		VATType:        vatType,
		VATNumber:      customer.TaxID(),
		Address1:       customer.Shipping.Address.Line1,
		City:           customer.Shipping.Address.City,
		ZipCode:        customer.Shipping.Address.PostalCode,
		CountryCode:    customer.Shipping.Address.Country,
		Currency:       billing.Currency,
		Email:          customer.Email,
		EmailInvoice:   customer.Email,
		YourReference:  customer.Shipping.Name,
		OurReference:   "web",
		TermsOfPayment: "K",
		DefaultDeliveryTypes: &model.DefaultDeliveryTypes{
			Order:   "EMAIL",
			Invoice: "EMAIL",
		},
	}
}
