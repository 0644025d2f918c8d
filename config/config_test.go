package config

import (
	"testing"
	"time"

	"github.com/pitabwire/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() ClientConfig {
	return ClientConfig{
		Credentials: Credentials{
			AppKey:    "app-key",
			AppSecret: "app-secret",
			Username:  "merchant",
			Password:  "secret",
		},
	}
}

func TestClientConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *ClientConfig)
		expectError string
	}{
		{
			name:   "Happy path - all credentials present",
			mutate: func(_ *ClientConfig) {},
		},
		{
			name:        "Error - missing app key",
			mutate:      func(c *ClientConfig) { c.Credentials.AppKey = "" },
			expectError: "app key is required",
		},
		{
			name:        "Error - missing app secret",
			mutate:      func(c *ClientConfig) { c.Credentials.AppSecret = "" },
			expectError: "app secret is required",
		},
		{
			name:        "Error - missing username",
			mutate:      func(c *ClientConfig) { c.Credentials.Username = "" },
			expectError: "username is required",
		},
		{
			name:        "Error - missing password",
			mutate:      func(c *ClientConfig) { c.Credentials.Password = "" },
			expectError: "password is required",
		},
		{
			name:        "Error - negative retries",
			mutate:      func(c *ClientConfig) { c.MaxRetries = -1 },
			expectError: "max retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestClientConfigDefaults(t *testing.T) {
	cfg := validClientConfig()

	assert.Equal(t, ProductionBaseURL, cfg.GetBaseURL())
	assert.Equal(t, DefaultTimeout, cfg.GetTimeout())
	assert.Equal(t, DefaultMaxRetries, cfg.GetMaxRetries())
	assert.Equal(t, DefaultRetryDelay, cfg.GetRetryDelay())
	assert.Equal(t, DefaultWebhookPath, cfg.GetWebhookPath())
	assert.Equal(t, DefaultEventBuffer, cfg.GetEventBuffer())

	cfg.Sandbox = true
	assert.Equal(t, SandboxBaseURL, cfg.GetBaseURL())

	cfg.BaseURL = "http://127.0.0.1:9000"
	assert.Equal(t, "http://127.0.0.1:9000", cfg.GetBaseURL())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BKASH_APP_KEY", "TestAppKey")
	t.Setenv("BKASH_APP_SECRET", "TestAppSecret")
	t.Setenv("BKASH_USERNAME", "01770618567")
	t.Setenv("BKASH_PASSWORD", "D7DaC<*E*eG")
	t.Setenv("BKASH_RETRY_DELAY_MS", "250")
	t.Setenv("BKASH_WEBHOOK_SECRET", "whsec")

	bkashConfig, err := frame.ConfigFromEnv[BkashConfig]()
	require.NoError(t, err)

	assert.Equal(t, "TestAppKey", bkashConfig.AppKey)
	assert.True(t, bkashConfig.Sandbox)
	assert.Equal(t, 3, bkashConfig.MaxRetries)
	assert.Equal(t, "/webhook", bkashConfig.WebhookPath)

	clientConfig := bkashConfig.ClientConfig()
	require.NoError(t, clientConfig.Validate())
	assert.Equal(t, 250*time.Millisecond, clientConfig.GetRetryDelay())
	assert.Equal(t, 30*time.Second, clientConfig.GetTimeout())
	assert.Equal(t, SandboxBaseURL, clientConfig.GetBaseURL())
	assert.Equal(t, "whsec", clientConfig.WebhookSecret)
}
