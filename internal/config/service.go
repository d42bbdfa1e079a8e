package config

type ServiceConfig struct {
	Name                string        `yaml:"name"`
	Environment         string        `yaml:"environment"`
	Version             string        `yaml:"version"`
	StripeWebhookSecret string        `yaml:"stripe_webhook_secret" validate:"required"`
	Billing             BillingConfig `yaml:"billing"`
}

// BillingConfig holds the deployment-time billing constants. They are not
// runtime-configurable beyond this file: article number, settlement currency
// and the home country used for VAT classification are fixed per deployment.
type BillingConfig struct {
	ArticleNumber    string `yaml:"article_number" validate:"required"`
	Currency         string `yaml:"currency" validate:"required,len=3"`
	HomeCountry      string `yaml:"home_country" validate:"required,len=2"`
	EmailFrom        string `yaml:"email_from" validate:"required,email"`
	EmailBCC         string `yaml:"email_bcc" validate:"omitempty,email"`
	EmailSubject     string `yaml:"email_subject"`
	PrepaidRemarks   string `yaml:"prepaid_remarks"`
	PrepaidEmailBody string `yaml:"prepaid_email_body"`
	InvoiceEmailBody string `yaml:"invoice_email_body"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

func (b *BillingConfig) applyDefaults() {
	if b.ArticleNumber == "" {
		b.ArticleNumber = "4501"
	}
	if b.Currency == "" {
		b.Currency = "EUR"
	}
	if b.HomeCountry == "" {
		b.HomeCountry = "SE"
	}
	if b.EmailFrom == "" {
		b.EmailFrom = "finance@flexinets.eu"
	}
	if b.EmailBCC == "" {
		b.EmailBCC = "finance@flexinets.eu"
	}
	if b.EmailSubject == "" {
		b.EmailSubject = "Flexinets Invoice/Order Receipt {no}"
	}
	if b.PrepaidRemarks == "" {
		b.PrepaidRemarks = "Don't pay this invoice!\n\nYou have prepaid by credit/debit card."
	}
	if b.PrepaidEmailBody == "" {
		b.PrepaidEmailBody = "Dear Flexinets user,<br />This email contains the credit card receipt for your prepaid subscription. No action required.<br /><br />Best regards<br />Flexinets<br />www.flexinets.eu"
	}
	if b.InvoiceEmailBody == "" {
		// Placeholder pending real copy for manually paid invoices.
		b.InvoiceEmailBody = "hitta på text för fakturan"
	}
}
