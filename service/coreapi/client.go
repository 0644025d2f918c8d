package coreapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/antinvestor/bkash-api/config"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client represents the bKash tokenized checkout API client.
type Client struct {
	AppKey     string
	AppSecret  string
	Username   string
	Password   string
	BaseURL    string
	HttpClient *http.Client //nolint:staticcheck // API field name

	Logger  *logrus.Entry
	breaker *gobreaker.CircuitBreaker
}

// New creates a new instance of the bKash API client.
func New(cfg config.ClientConfig, logger *logrus.Entry) *Client {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:    10,
		IdleConnTimeout: 30 * time.Second,
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(tr),
		Timeout:   cfg.GetTimeout(),
	}

	client := &Client{
		AppKey:     cfg.Credentials.AppKey,
		AppSecret:  cfg.Credentials.AppSecret,
		Username:   cfg.Credentials.Username,
		Password:   cfg.Credentials.Password,
		BaseURL:    strings.TrimRight(cfg.GetBaseURL(), "/"),
		HttpClient: httpClient,
		Logger:     logger.WithField("component", "coreapi"),
	}

	if cfg.BreakerEnabled {
		client.EnableBreaker()
	}
	return client
}

// EnableBreaker guards every outbound call with a circuit breaker that opens after
// five consecutive transport failures or 5xx responses.
func (c *Client) EnableBreaker() {
	logger := c.logger()
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "bkash-checkout",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithField("breaker", name).
				WithField("from", from.String()).
				WithField("to", to.String()).
				Warn("circuit breaker state changed")
		},
	})
}

// GrantToken exchanges the merchant credentials for an access token.
func (c *Client) GrantToken(ctx context.Context) (*models.TokenResponse, error) {
	body := models.GrantTokenRequest{AppKey: c.AppKey, AppSecret: c.AppSecret}

	var tokenResponse models.TokenResponse
	if err := c.post(ctx, pathTokenGrant, c.credentialHeaders(), body, &tokenResponse); err != nil {
		return nil, err
	}
	return &tokenResponse, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	body := models.RefreshTokenRequest{AppKey: c.AppKey, AppSecret: c.AppSecret, RefreshToken: refreshToken}

	var tokenResponse models.TokenResponse
	if err := c.post(ctx, pathTokenRefresh, c.credentialHeaders(), body, &tokenResponse); err != nil {
		return nil, err
	}
	return &tokenResponse, nil
}

// CreatePayment creates a checkout and returns the payer redirect URL.
func (c *Client) CreatePayment(
	ctx context.Context,
	request models.CreatePaymentFullRequest,
	accessToken string,
) (*models.CreatePaymentResponse, error) {
	var response models.CreatePaymentResponse
	if err := c.post(ctx, pathCheckoutCreate, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ExecutePayment finalizes an authorized checkout.
func (c *Client) ExecutePayment(
	ctx context.Context,
	request models.ExecutePaymentRequest,
	accessToken string,
) (*models.ExecutePaymentResponse, error) {
	var response models.ExecutePaymentResponse
	if err := c.post(ctx, pathCheckoutExecute, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) PaymentStatus(
	ctx context.Context,
	request models.PaymentStatusRequest,
	accessToken string,
) (*models.PaymentStatusResponse, error) {
	var response models.PaymentStatusResponse
	if err := c.post(ctx, pathPaymentStatus, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) SearchTransaction(
	ctx context.Context,
	request models.SearchTransactionRequest,
	accessToken string,
) (*models.SearchTransactionResponse, error) {
	var response models.SearchTransactionResponse
	if err := c.post(ctx, pathSearchTransaction, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) RefundTransaction(
	ctx context.Context,
	request models.RefundRequest,
	accessToken string,
) (*models.RefundResponse, error) {
	var response models.RefundResponse
	if err := c.post(ctx, pathRefund, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) RefundStatus(
	ctx context.Context,
	request models.RefundStatusRequest,
	accessToken string,
) (*models.RefundStatusResponse, error) {
	var response models.RefundStatusResponse
	if err := c.post(ctx, pathRefundStatus, c.authHeaders(accessToken), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) credentialHeaders() map[string]string {
	return map[string]string{
		headerUsername: c.Username,
		headerPassword: c.Password,
	}
}

func (c *Client) authHeaders(accessToken string) map[string]string {
	return map[string]string{
		headerAuthorization: accessToken,
		headerAppKey:        c.AppKey,
	}
}

// post issues one JSON POST and decodes a successful body into out. Every failure
// is returned as a *TransportError.
func (c *Client) post(ctx context.Context, path string, headers map[string]string, body any, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	statusCode, respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return newTransportError(statusCode, respBody, nil)
	}
	if applicationFailure(respBody) {
		return newTransportError(statusCode, respBody, ErrApplicationFailure)
	}

	if unmarshalErr := json.Unmarshal(respBody, out); unmarshalErr != nil {
		return newTransportError(statusCode, respBody,
			fmt.Errorf("failed to parse response: %w", unmarshalErr))
	}
	return nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	if c.breaker == nil {
		return c.roundTrip(req)
	}

	type exchange struct {
		statusCode int
		body       []byte
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		statusCode, body, rtErr := c.roundTrip(req)
		if rtErr != nil {
			return nil, rtErr
		}
		ex := exchange{statusCode: statusCode, body: body}
		if statusCode >= http.StatusInternalServerError {
			return ex, newTransportError(statusCode, body, nil)
		}
		return ex, nil
	})
	if ex, ok := result.(exchange); ok {
		return ex.statusCode, ex.body, nil
	}
	if err != nil {
		if te, ok := err.(*TransportError); ok {
			return 0, nil, te
		}
		return 0, nil, &TransportError{Err: err}
	}
	return 0, nil, &TransportError{Err: fmt.Errorf("unexpected breaker result %T", result)}
}

func (c *Client) roundTrip(req *http.Request) (int, []byte, error) {
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger().WithError(closeErr).Warn("failed to close response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) logger() *logrus.Entry {
	if c.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return c.Logger
}
