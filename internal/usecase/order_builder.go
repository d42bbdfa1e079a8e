package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/domain/model"
)

const orderDateLayout = "2006-01-02 15:04:05"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// BuildOrder maps a Stripe invoice onto a Fortnox order: one row per line
// item, an informational row for an applied promo code, and a trailing row
// with the original invoice timestamp.
func BuildOrder(invoice *model.SourceInvoice, customerNumber string, billing config.BillingConfig) *model.Order {
	percentOff, hasDiscount := invoice.PercentOff()

	rows := make([]model.OrderRow, 0, len(invoice.Lines.Data)+2)
	for _, line := range invoice.Lines.Data {
		quantity := int64(0)
		if line.Quantity != nil {
			quantity = *line.Quantity
		}
		vat := 0
		if invoice.TaxPercent != nil {
			vat = int(*invoice.TaxPercent)
		}
		rows = append(rows, model.OrderRow{
			// Stripe renders quantities as "2 × Plan"; Fortnox chokes on
			// the multiplication sign.
			Description:       strings.ReplaceAll(line.Description, "×", "x"),
			AccountNumber:     "",
			ArticleNumber:     billing.ArticleNumber,
			Price:             unitPrice(line.Amount),
			OrderedQuantity:   quantity,
			DeliveredQuantity: quantity,
			VAT:               vat,
			Discount:          percentOff,
			DiscountType:      model.DiscountTypePercent,
		})
	}

	if hasDiscount {
		coupon := invoice.Discount.Coupon
		rows = append(rows, informationalRow(
			fmt.Sprintf("Promo code %s applied: %s", coupon.ID, coupon.Name),
		))
	}

	rows = append(rows, informationalRow(
		fmt.Sprintf("Order date %s UTC", invoice.IssuedAt().Format(orderDateLayout)),
	))

	remarks := ""
	emailBody := billing.InvoiceEmailBody
	if invoice.BillingMode() == model.BillingChargeAutomatically {
		remarks = billing.PrepaidRemarks
		emailBody = billing.PrepaidEmailBody
	}

	return &model.Order{
		CustomerNumber:            customerNumber,
		ExternalInvoiceReference1: invoice.ID,
		Currency:                  strings.ToUpper(invoice.Currency),
		Language:                  "EN",
		Remarks:                   remarks,
		CopyRemarks:               true,
		EmailInformation: model.EmailInformation{
			EmailAddressFrom: billing.EmailFrom,
			EmailAddressBCC:  billing.EmailBCC,
			EmailSubject:     billing.EmailSubject,
			EmailBody:        emailBody,
		},
		OrderRows: rows,
	}
}

// unitPrice converts minor currency units to major units.
func unitPrice(amount int64) float64 {
	return decimal.NewFromInt(amount).Div(minorUnitsPerMajor).InexactFloat64()
}

// informationalRow is a zero-valued row carrying only a description.
func informationalRow(description string) model.OrderRow {
	return model.OrderRow{
		Description:   description,
		AccountNumber: "0",
	}
}
