package token

import (
	"context"
	"time"

	"github.com/antinvestor/bkash-api/service/coreapi"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiresIn applies when the grant response omits expires_in.
const DefaultExpiresIn = 3600

const acquireKey = "grant"

// Manager owns the single live access token of one client.
type Manager struct {
	client   coreapi.BkashApiClient
	executor *retry.Executor
	store    Store
	logger   *logrus.Entry
	now      func() time.Time

	group singleflight.Group
}

func NewManager(client coreapi.BkashApiClient, executor *retry.Executor, store Store, logger *logrus.Entry) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{
		client:   client,
		executor: executor,
		store:    store,
		logger:   logger.WithField("component", "token"),
		now:      time.Now,
	}
}

// GetToken returns the cached token while it is unexpired, otherwise acquires
// a new one. Concurrent callers that miss the cache share one acquisition; it
// runs detached from any single caller's cancellation, and each caller stops
// waiting when its own context is done.
func (m *Manager) GetToken(ctx context.Context) (string, error) {
	if t := m.cached(ctx); t.Valid(m.now()) {
		return t.Value, nil
	}

	shared := context.WithoutCancel(ctx)
	results := m.group.DoChan(acquireKey, func() (any, error) {
		if t := m.cached(shared); t.Valid(m.now()) {
			return t.Value, nil
		}
		return m.acquire(shared)
	})

	select {
	case <-ctx.Done():
		return "", models.NewClassifiedError(models.CodeTokenError, "failed to acquire access token", ctx.Err())
	case result := <-results:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}

func (m *Manager) acquire(ctx context.Context) (string, error) {
	response, err := retry.Do(ctx, m.executor, "token.grant", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.GrantToken(ctx)
	})
	if err != nil {
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.WithError(clearErr).Warn("failed to clear token store")
		}
		m.logger.WithError(err).Error("token acquisition failed")
		return "", models.NewClassifiedError(models.CodeTokenError, "failed to acquire access token", err)
	}

	expiresIn := response.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = DefaultExpiresIn
	}

	t := &Token{
		Value:        response.IDToken,
		RefreshValue: response.RefreshToken,
		ExpiresAt:    m.now().Add(time.Duration(expiresIn) * time.Second),
	}
	if err = m.store.Save(ctx, t); err != nil {
		m.logger.WithError(err).Warn("failed to store access token")
	}

	m.logger.WithField("expires_at", t.ExpiresAt).Debug("access token acquired")
	return t.Value, nil
}

func (m *Manager) cached(ctx context.Context) *Token {
	t, err := m.store.Load(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("failed to load cached token")
		return nil
	}
	return t
}

// GrantToken performs an unconditional grant without touching the cache.
func (m *Manager) GrantToken(ctx context.Context) (*models.TokenResponse, error) {
	response, err := retry.Do(ctx, m.executor, "token.grant", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.GrantToken(ctx)
	})
	if err != nil {
		return nil, models.NewClassifiedError(models.CodeTokenGrantError, "failed to grant token", err)
	}
	return response, nil
}

// RefreshToken exchanges refreshToken for a new token without touching the cache.
func (m *Manager) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	response, err := retry.Do(ctx, m.executor, "token.refresh", func(ctx context.Context) (*models.TokenResponse, error) {
		return m.client.RefreshToken(ctx, refreshToken)
	})
	if err != nil {
		return nil, models.NewClassifiedError(models.CodeTokenRefreshError, "failed to refresh token", err)
	}
	return response, nil
}

func (m *Manager) IsTokenExpired(ctx context.Context) bool {
	return !m.cached(ctx).Valid(m.now())
}

func (m *Manager) ClearToken(ctx context.Context) error {
	return m.store.Clear(ctx)
}
