// Package fortnox is the authenticated client for the Fortnox REST API. It
// issues single requests with the Access-Token/Client-Secret header pair and
// performs no retries; redelivery safety is handled one layer up.
package fortnox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/flexinets/fortnox-gateway/internal/apperrors"
	"github.com/flexinets/fortnox-gateway/internal/domain/model"
)

// Credentials is one environment-scoped access token / client secret pair.
type Credentials struct {
	AccessToken  string
	ClientSecret string
}

type Client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, creds Credentials, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CreateCustomer creates a customer and returns the raw Fortnox response body.
func (c *Client) CreateCustomer(ctx context.Context, customer *model.Customer) ([]byte, error) {
	payload := model.CustomerEnvelope{Customer: *customer}
	body, status, request, err := c.do(ctx, http.MethodPost, "/3/customers/", nil, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.erpError("/3/customers/", status, body, request)
	}
	return body, nil
}

// CreateOrder creates an order and returns the raw Fortnox response body.
func (c *Client) CreateOrder(ctx context.Context, order *model.Order) ([]byte, error) {
	payload := model.OrderEnvelope{Order: *order}
	body, status, request, err := c.do(ctx, http.MethodPost, "/3/orders/", nil, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.erpError("/3/orders/", status, body, request)
	}
	return body, nil
}

// GetCustomerByNumber fetches a customer by its customer number. A 400 or 404
// means no such number exists and is reported as found=false, not as an error.
func (c *Client) GetCustomerByNumber(ctx context.Context, customerNumber string) (*model.Customer, bool, error) {
	path := "/3/customers/" + url.PathEscape(customerNumber)
	body, status, request, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusBadRequest || status == http.StatusNotFound {
		return nil, false, nil
	}
	if status < 200 || status >= 300 {
		return nil, false, c.erpError(path, status, body, request)
	}

	var envelope model.CustomerEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, apperrors.NewAppError(apperrors.ErrERPRequestFailed, "failed to decode fortnox customer response", err)
	}
	return &envelope.Customer, true, nil
}

// SearchCustomersByPhone searches the customer index on the phone field. The
// phone field is the only writable, searchable field Fortnox offers for
// cross-referencing, so it doubles as the external-id channel.
func (c *Client) SearchCustomersByPhone(ctx context.Context, phone string) ([]model.Customer, error) {
	query := url.Values{"phone1": {phone}}
	body, status, request, err := c.do(ctx, http.MethodGet, "/3/customers", query, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.erpError("/3/customers", status, body, request)
	}

	var envelope model.CustomerListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrERPRequestFailed, "failed to decode fortnox customer search response", err)
	}
	return envelope.Customers, nil
}

// OrdersByExternalReference returns how many orders carry the given external
// invoice reference.
func (c *Client) OrdersByExternalReference(ctx context.Context, reference string) (int, error) {
	query := url.Values{"externalinvoicereference1": {reference}}
	body, status, request, err := c.do(ctx, http.MethodGet, "/3/orders", query, nil)
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return 0, c.erpError("/3/orders", status, body, request)
	}

	var envelope model.OrderListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrERPRequestFailed, "failed to decode fortnox order search response", err)
	}
	if envelope.MetaInformation != nil && envelope.MetaInformation.TotalResources > 0 {
		return envelope.MetaInformation.TotalResources, nil
	}
	return len(envelope.Orders), nil
}

// do issues one request and returns response body, status and the serialized
// request payload. Transport errors come back coded TRANSPORT_FAILURE.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (responseBody []byte, status int, requestBody []byte, err error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		requestBody, err = json.Marshal(payload)
		if err != nil {
			return nil, 0, nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to marshal fortnox request", err)
		}
		reader = bytes.NewReader(requestBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to build fortnox request", err)
	}
	req.Header.Set("Access-Token", c.creds.AccessToken)
	req.Header.Set("Client-Secret", c.creds.ClientSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, nil, apperrors.NewAppError(apperrors.ErrTransportFailure, fmt.Sprintf("fortnox request to %s failed", path), err)
	}
	defer resp.Body.Close()

	responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, apperrors.NewAppError(apperrors.ErrTransportFailure, "failed to read fortnox response", err)
	}
	return responseBody, resp.StatusCode, requestBody, nil
}

// erpError logs the response body together with the outgoing payload and
// wraps both in the returned error so the failing call can be reproduced.
func (c *Client) erpError(endpoint string, status int, responseBody, requestBody []byte) error {
	c.logger.Error("fortnox request failed",
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.ByteString("response", responseBody),
		zap.ByteString("request", requestBody),
	)
	return &apperrors.ERPError{
		Endpoint:     endpoint,
		StatusCode:   status,
		ResponseBody: responseBody,
		RequestBody:  requestBody,
	}
}
