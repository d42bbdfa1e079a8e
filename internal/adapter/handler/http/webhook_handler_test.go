package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	handlers "github.com/flexinets/fortnox-gateway/internal/adapter/handler/http"
	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/infrastructure/secrets"
)

const webhookSecret = "whsec_test_secret"

// signBody produces a Stripe-Signature header for body, the same scheme
// webhook.ConstructEvent verifies: v1 = HMAC-SHA256(secret, "<ts>.<body>").
func signBody(t *testing.T, body []byte) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func testConfig(fortnoxURL string) *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Service.StripeWebhookSecret = webhookSecret
	cfg.Fortnox.BaseURL = fortnoxURL
	cfg.Fortnox.Secrets = config.SecretsConfig{
		AccessTokenLive:  "WH_TEST_TOKEN_PROD",
		ClientSecretLive: "WH_TEST_SECRET_PROD",
		AccessTokenTest:  "WH_TEST_TOKEN_TEST",
		ClientSecretTest: "WH_TEST_SECRET_TEST",
	}
	return cfg
}

func setTestSecrets(t *testing.T) {
	t.Setenv("WH_TEST_TOKEN_PROD", "prod-token")
	t.Setenv("WH_TEST_SECRET_PROD", "prod-secret")
	t.Setenv("WH_TEST_TOKEN_TEST", "test-token")
	t.Setenv("WH_TEST_SECRET_TEST", "test-secret")
}

func deliver(t *testing.T, cfg *config.Config, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	handler := handlers.NewWebhookHandler(zap.NewNop(), cfg, secrets.NewEnvStore(cfg.Fortnox.Secrets))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.HandleWebhook(e.NewContext(req, rec)))
	return rec
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	setTestSecrets(t)
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no fortnox call expected for a rejected delivery")
	}))
	t.Cleanup(fake.Close)

	body := []byte(`{"id":"evt_1","type":"invoice.created","livemode":false,"data":{"object":{}}}`)
	rec := deliver(t, testConfig(fake.URL), body, "t=1,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "signature verification failed")
}

func TestHandleWebhook_InvoiceCreated(t *testing.T) {
	setTestSecrets(t)

	var orderCreates int
	var gotToken string
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Access-Token")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/3/orders":
			w.Write([]byte(`{"Orders":[],"MetaInformation":{"@TotalResources":0}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/3/customers/cus_123":
			w.Write([]byte(`{"Customer":{"CustomerNumber":"cus_123"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/3/orders/":
			orderCreates++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"Order":{"DocumentNumber":"1001"}}`))
		default:
			t.Errorf("unexpected fortnox call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fake.Close)

	body := []byte(`{
		"id": "evt_1",
		"type": "invoice.created",
		"livemode": false,
		"data": {
			"object": {
				"id": "in_123",
				"customer": "cus_123",
				"billing": "charge_automatically",
				"currency": "eur",
				"date": 1520332800,
				"lines": {"data": [{"description": "Flexinets subscription", "amount": 12345, "quantity": 1}]}
			}
		}
	}`)

	rec := deliver(t, testConfig(fake.URL), body, signBody(t, body))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Success echoes the ERP response body.
	assert.Contains(t, rec.Body.String(), "DocumentNumber")
	assert.Equal(t, 1, orderCreates)
	// livemode=false selects the test credential pair.
	assert.Equal(t, "test-token", gotToken)
}

func TestHandleWebhook_DuplicateInvoice(t *testing.T) {
	setTestSecrets(t)

	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/3/orders" {
			w.Write([]byte(`{"Orders":[{"DocumentNumber":"1001"}],"MetaInformation":{"@TotalResources":1}}`))
			return
		}
		t.Errorf("unexpected fortnox call after duplicate check: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(fake.Close)

	body := []byte(`{
		"id": "evt_2",
		"type": "invoice.created",
		"livemode": false,
		"data": {"object": {"id": "in_123", "customer": "cus_123", "lines": {"data": []}}}
	}`)

	rec := deliver(t, testConfig(fake.URL), body, signBody(t, body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate")
}

func TestHandleWebhook_EventWithoutData(t *testing.T) {
	setTestSecrets(t)

	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no fortnox call expected for an empty event: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(fake.Close)

	// Validly signed invoice.created envelope with no data block at all.
	body := []byte(`{"id":"evt_4","type":"invoice.created","livemode":false}`)

	rec := deliver(t, testConfig(fake.URL), body, signBody(t, body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PAYLOAD")
}

func TestHandleWebhook_MissingCredentials(t *testing.T) {
	// No secret env vars set: credential loading must fail cleanly.
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no fortnox call expected without credentials: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(fake.Close)

	cfg := testConfig(fake.URL)
	cfg.Fortnox.Secrets = config.SecretsConfig{
		AccessTokenTest:  "WH_TEST_TOKEN_UNSET",
		ClientSecretTest: "WH_TEST_SECRET_UNSET",
		AccessTokenLive:  "WH_TEST_TOKEN_UNSET",
		ClientSecretLive: "WH_TEST_SECRET_UNSET",
	}

	body := []byte(`{"id":"evt_5","type":"invoice.created","livemode":false,"data":{"object":{"id":"in_123","lines":{"data":[]}}}}`)

	rec := deliver(t, cfg, body, signBody(t, body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "WH_TEST_TOKEN_UNSET")
	assert.Contains(t, rec.Body.String(), "INTERNAL")
}

func TestHandleWebhook_UnsupportedEventAcknowledged(t *testing.T) {
	setTestSecrets(t)

	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no fortnox call expected for an unsupported event: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(fake.Close)

	body := []byte(`{"id":"evt_3","type":"charge.succeeded","livemode":false,"data":{"object":{}}}`)

	rec := deliver(t, testConfig(fake.URL), body, signBody(t, body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skipped")
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_EVENT")
}
