// Package bkash is a client for the bKash tokenized checkout API.
package bkash

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/antinvestor/bkash-api/config"
	"github.com/antinvestor/bkash-api/service/business"
	"github.com/antinvestor/bkash-api/service/coreapi"
	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/handler"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/retry"
	"github.com/antinvestor/bkash-api/service/token"
	"github.com/antinvestor/bkash-api/service/utility"
	"github.com/sirupsen/logrus"
)

type (
	ClassifiedError = models.ClassifiedError
	ValidationError = models.ValidationError
	Event           = events.Event
	EventType       = events.Type
	Subscription    = events.Subscription
	WebhookCallback = handler.Callback
)

type options struct {
	logger     *logrus.Entry
	store      token.Store
	httpClient *http.Client
	apiClient  coreapi.BkashApiClient
	callback   handler.Callback
}

type Option func(*options)

func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) { o.logger = logger }
}

// WithTokenStore replaces the in-memory token cache, e.g. with a token.RedisStore.
func WithTokenStore(store token.Store) Option {
	return func(o *options) { o.store = store }
}

// WithHTTPClient swaps the transport used for gateway calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithAPIClient replaces the gateway client entirely.
func WithAPIClient(client coreapi.BkashApiClient) Option {
	return func(o *options) { o.apiClient = client }
}

// WithWebhookCallback registers the callback HandleWebhook awaits.
func WithWebhookCallback(callback handler.Callback) Option {
	return func(o *options) { o.callback = callback }
}

// Client is safe for concurrent use.
type Client struct {
	config config.ClientConfig
	logger *logrus.Entry

	store    token.Store
	tokens   *token.Manager
	bus      *events.Bus
	webhooks *handler.WebhookHandler

	payments     business.PaymentBusiness
	transactions business.TransactionBusiness
	refunds      business.RefundBusiness
}

func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	logger := o.logger.WithField("client", "bkash")

	api := o.apiClient
	if api == nil {
		coreClient := coreapi.New(cfg, logger)
		if o.httpClient != nil {
			coreClient.HttpClient = o.httpClient
		}
		api = coreClient
	}

	executor := retry.NewExecutor(cfg.GetMaxRetries(), cfg.GetRetryDelay(), logger.WithField("component", "retry"))
	tokens := token.NewManager(api, executor, o.store, logger)
	bus := events.NewBus(cfg.GetEventBuffer(), logger)

	runner := &business.Runner{
		Client:   api,
		Tokens:   tokens,
		Executor: executor,
		Bus:      bus,
		Logger:   logger.WithField("component", "business"),
	}

	ctx := context.Background()
	payments, err := business.NewPaymentBusiness(ctx, runner)
	if err != nil {
		return nil, err
	}
	transactions, err := business.NewTransactionBusiness(ctx, runner)
	if err != nil {
		return nil, err
	}
	refunds, err := business.NewRefundBusiness(ctx, runner)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:       cfg,
		logger:       logger,
		store:        o.store,
		tokens:       tokens,
		bus:          bus,
		webhooks:     handler.NewWebhookHandler(cfg.WebhookSecret, bus, o.callback, logger),
		payments:     payments,
		transactions: transactions,
		refunds:      refunds,
	}, nil
}

func (c *Client) CreatePayment(ctx context.Context, request models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	return c.payments.CreatePayment(ctx, request)
}

func (c *Client) CreatePaymentFull(
	ctx context.Context, request models.CreatePaymentFullRequest,
) (*models.CreatePaymentResponse, error) {
	return c.payments.CreatePaymentFull(ctx, request)
}

func (c *Client) ExecutePayment(ctx context.Context, paymentID string) (*models.ExecutePaymentResponse, error) {
	return c.payments.ExecutePayment(ctx, paymentID)
}

func (c *Client) VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error) {
	return c.payments.VerifyPayment(ctx, paymentID)
}

func (c *Client) QueryPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error) {
	return c.payments.QueryPayment(ctx, paymentID)
}

func (c *Client) CheckTransactionStatus(ctx context.Context, trxID string) (*models.SearchTransactionResponse, error) {
	return c.transactions.CheckTransactionStatus(ctx, trxID)
}

func (c *Client) SearchTransaction(
	ctx context.Context, request models.SearchTransactionRequest,
) (*models.SearchTransactionResponse, error) {
	return c.transactions.SearchTransaction(ctx, request)
}

func (c *Client) SearchTransactionLegacy(ctx context.Context, trxID string) (*models.SearchTransactionResponse, error) {
	return c.transactions.SearchTransactionLegacy(ctx, trxID)
}

func (c *Client) RefundPayment(ctx context.Context, request models.RefundRequest) (*models.RefundResponse, error) {
	return c.refunds.RefundPayment(ctx, request)
}

func (c *Client) RefundPaymentLegacy(
	ctx context.Context, request models.LegacyRefundRequest,
) (*models.LegacyRefundResponse, error) {
	return c.refunds.RefundPaymentLegacy(ctx, request)
}

func (c *Client) CheckRefundStatus(
	ctx context.Context, request models.RefundStatusRequest,
) (*models.RefundStatusResponse, error) {
	return c.refunds.CheckRefundStatus(ctx, request)
}

// GrantToken requests a fresh token without touching the cached one.
func (c *Client) GrantToken(ctx context.Context) (*models.TokenResponse, error) {
	return c.tokens.GrantToken(ctx)
}

// RefreshToken exchanges refreshToken without touching the cached token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	return c.tokens.RefreshToken(ctx, refreshToken)
}

func (c *Client) HandleWebhook(ctx context.Context, raw []byte, signature string) error {
	return c.webhooks.HandleWebhook(ctx, raw, signature)
}

// VerifyWebhookSignature fails with WEBHOOK_SECRET_MISSING when no secret is configured.
func (c *Client) VerifyWebhookSignature(raw []byte, signature string) (bool, error) {
	if c.config.WebhookSecret == "" {
		return false, models.NewClassifiedError(models.CodeWebhookSecretMissing, "webhook secret is not configured", nil)
	}
	return c.webhooks.VerifySignature(raw, signature), nil
}

func (c *Client) CreateWebhookEvent(payload any) (*handler.Delivery, error) {
	return c.webhooks.CreateWebhookEvent(payload)
}

// WebhookHandler exposes the handler for hosting it behind an HTTP endpoint.
func (c *Client) WebhookHandler() *handler.WebhookHandler {
	return c.webhooks
}

func (c *Client) IsTransactionSuccessful(s utility.Classifiable) bool {
	return utility.IsTransactionSuccessful(s)
}

func (c *Client) IsTransactionPending(s utility.Classifiable) bool {
	return utility.IsTransactionPending(s)
}

func (c *Client) IsTransactionFailed(s utility.Classifiable) bool {
	return utility.IsTransactionFailed(s)
}

// Subscribe delivers lifecycle events of the given types, or all of them.
// Each subscriber is called on its own goroutine, in publish order. Publishing
// never waits on a subscriber: once a subscriber has ClientConfig.EventBuffer
// undelivered events queued, further events for it are dropped and a warning
// is logged. Handlers that do slow work should hand events off quickly.
func (c *Client) Subscribe(handler func(Event), types ...EventType) *Subscription {
	return c.bus.Subscribe(handler, types...)
}

func (c *Client) IsTokenExpired(ctx context.Context) bool {
	return c.tokens.IsTokenExpired(ctx)
}

func (c *Client) ClearToken(ctx context.Context) error {
	return c.tokens.ClearToken(ctx)
}

// Close drains pending events and stops every subscriber.
func (c *Client) Close() error {
	c.bus.Close()
	if closer, ok := c.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close token store: %w", err)
		}
	}
	return nil
}
