package config

import (
	"errors"
	"time"

	"github.com/pitabwire/frame"
)

const (
	SandboxBaseURL    = "https://tokenized.sandbox.bka.sh/v1.2.0-beta"
	ProductionBaseURL = "https://tokenized.pay.bka.sh/v1.2.0-beta"

	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = time.Second
	DefaultWebhookPath = "/webhook"
	DefaultEventBuffer = 64
)

// Credentials identify the merchant to the gateway. They are never mutated after construction.
type Credentials struct {
	AppKey    string
	AppSecret string
	Username  string
	Password  string
}

// ClientConfig configures the client library.
type ClientConfig struct {
	Credentials Credentials

	// Sandbox selects the sandbox base URL. BaseURL, when set, overrides both.
	Sandbox bool
	BaseURL string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// WebhookSecret enables signature verification of inbound webhooks.
	WebhookSecret string
	WebhookPath   string

	// EventBuffer is the per-subscriber queue length. Events published while a
	// subscriber's queue is full are dropped for that subscriber.
	EventBuffer    int
	BreakerEnabled bool
}

// Validate checks that the credentials needed for every call are present.
func (c *ClientConfig) Validate() error {
	switch {
	case c.Credentials.AppKey == "":
		return errors.New("bkash: app key is required")
	case c.Credentials.AppSecret == "":
		return errors.New("bkash: app secret is required")
	case c.Credentials.Username == "":
		return errors.New("bkash: username is required")
	case c.Credentials.Password == "":
		return errors.New("bkash: password is required")
	case c.MaxRetries < 0:
		return errors.New("bkash: max retries cannot be negative")
	case c.RetryDelay < 0:
		return errors.New("bkash: retry delay cannot be negative")
	}
	return nil
}

// GetBaseURL returns the gateway base URL for the configured environment.
func (c *ClientConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Sandbox {
		return SandboxBaseURL
	}
	return ProductionBaseURL
}

func (c *ClientConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *ClientConfig) GetMaxRetries() int {
	if c.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}

func (c *ClientConfig) GetRetryDelay() time.Duration {
	if c.RetryDelay == 0 {
		return DefaultRetryDelay
	}
	return c.RetryDelay
}

func (c *ClientConfig) GetWebhookPath() string {
	if c.WebhookPath == "" {
		return DefaultWebhookPath
	}
	return c.WebhookPath
}

func (c *ClientConfig) GetEventBuffer() int {
	if c.EventBuffer <= 0 {
		return DefaultEventBuffer
	}
	return c.EventBuffer
}

// BkashConfig is the environment configuration of the webhook host service.
type BkashConfig struct {
	frame.ConfigurationDefault

	AppKey    string `env:"BKASH_APP_KEY"    required:"true"`
	AppSecret string `env:"BKASH_APP_SECRET" required:"true"`
	Username  string `env:"BKASH_USERNAME"   required:"true"`
	Password  string `env:"BKASH_PASSWORD"   required:"true"`

	Sandbox bool   `envDefault:"true" env:"BKASH_SANDBOX"`
	BaseURL string `env:"BKASH_BASE_URL"`

	TimeoutSeconds int `envDefault:"30"   env:"BKASH_TIMEOUT_SECONDS"`
	MaxRetries     int `envDefault:"3"    env:"BKASH_MAX_RETRIES"`
	RetryDelayMs   int `envDefault:"1000" env:"BKASH_RETRY_DELAY_MS"`

	WebhookSecret string `env:"BKASH_WEBHOOK_SECRET"`
	WebhookPath   string `envDefault:"/webhook" env:"BKASH_WEBHOOK_PATH"`

	BreakerEnabled bool `envDefault:"false" env:"BKASH_BREAKER_ENABLED"`

	// RedisURL, when set, shares the access token between instances.
	RedisURL string `env:"REDIS_URL"`

	PaymentServiceURI  string `env:"PAYMENT_SERVICE_URI"`
	EventsPublisherURL string `envDefault:"mem://bkash.lifecycle" env:"EVENTS_PUBLISHER_URL"`
	HTTPPort           string `envDefault:":8080" env:"HTTP_PORT"`
}

// ClientConfig converts the environment configuration into the library configuration.
func (c *BkashConfig) ClientConfig() ClientConfig {
	return ClientConfig{
		Credentials: Credentials{
			AppKey:    c.AppKey,
			AppSecret: c.AppSecret,
			Username:  c.Username,
			Password:  c.Password,
		},
		Sandbox:        c.Sandbox,
		BaseURL:        c.BaseURL,
		Timeout:        time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries:     c.MaxRetries,
		RetryDelay:     time.Duration(c.RetryDelayMs) * time.Millisecond,
		WebhookSecret:  c.WebhookSecret,
		WebhookPath:    c.WebhookPath,
		BreakerEnabled: c.BreakerEnabled,
	}
}
