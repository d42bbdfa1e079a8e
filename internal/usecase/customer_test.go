package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flexinets/fortnox-gateway/internal/domain/model"
	"github.com/flexinets/fortnox-gateway/internal/usecase"
)

func sourceCustomer() *model.SourceCustomer {
	return &model.SourceCustomer{
		ID:    "cus_123",
		Email: "user@example.com",
		Shipping: model.SourceShipping{
			Name: "Anna Andersson",
			Address: model.SourceAddress{
				Line1:      "Storgatan 1",
				City:       "Stockholm",
				PostalCode: "11122",
				Country:    "SE",
			},
		},
	}
}

func TestBuildCustomer_VATClassification(t *testing.T) {
	tests := []struct {
		name    string
		country string
		want    string
	}{
		{"home country uppercase", "SE", model.VATTypeDomestic},
		{"home country lowercase", "se", model.VATTypeDomestic},
		{"home country mixed case", "Se", model.VATTypeDomestic},
		{"eu country", "DE", model.VATTypeExport},
		{"non-eu country", "US", model.VATTypeExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := sourceCustomer()
			customer.Shipping.Address.Country = tt.country

			result := usecase.BuildCustomer(customer, testBilling())

			assert.Equal(t, tt.want, result.VATType)
		})
	}
}

func TestBuildCustomer_TypeInference(t *testing.T) {
	t.Run("company name metadata yields COMPANY", func(t *testing.T) {
		customer := sourceCustomer()
		customer.Metadata = map[string]string{"CompanyName": "Acme AB"}

		result := usecase.BuildCustomer(customer, testBilling())

		assert.Equal(t, model.CustomerTypeCompany, result.Type)
		assert.Equal(t, "Acme AB", result.Name)
		// YourReference stays the shipping contact.
		assert.Equal(t, "Anna Andersson", result.YourReference)
	})

	t.Run("empty company name yields PRIVATE", func(t *testing.T) {
		customer := sourceCustomer()
		customer.Metadata = map[string]string{"CompanyName": "  "}

		result := usecase.BuildCustomer(customer, testBilling())

		assert.Equal(t, model.CustomerTypePrivate, result.Type)
		assert.Equal(t, "Anna Andersson", result.Name)
	})

	t.Run("absent metadata yields PRIVATE", func(t *testing.T) {
		result := usecase.BuildCustomer(sourceCustomer(), testBilling())

		assert.Equal(t, model.CustomerTypePrivate, result.Type)
		assert.Equal(t, "Anna Andersson", result.Name)
	})
}

func TestBuildCustomer_Mapping(t *testing.T) {
	customer := sourceCustomer()
	customer.TaxInfo = &model.SourceTaxInfo{TaxID: "SE556677889901"}

	result := usecase.BuildCustomer(customer, testBilling())

	assert.Equal(t, "cus_123", result.CustomerNumber)
	assert.Equal(t, "Storgatan 1", result.Address1)
	assert.Equal(t, "Stockholm", result.City)
	assert.Equal(t, "11122", result.ZipCode)
	assert.Equal(t, "SE", result.CountryCode)
	assert.Equal(t, "EUR", result.Currency)
	assert.Equal(t, "user@example.com", result.Email)
	assert.Equal(t, "user@example.com", result.EmailInvoice)
	assert.Equal(t, "SE556677889901", result.VATNumber)
	assert.Equal(t, "web", result.OurReference)
	assert.Equal(t, "K", result.TermsOfPayment)
	if assert.NotNil(t, result.DefaultDeliveryTypes) {
		assert.Equal(t, "EMAIL", result.DefaultDeliveryTypes.Order)
		assert.Equal(t, "EMAIL", result.DefaultDeliveryTypes.Invoice)
	}
}
