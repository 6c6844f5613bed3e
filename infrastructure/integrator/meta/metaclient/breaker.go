package metaclient

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// CircuitBreakerClient protege as chamadas ao Meta contra falhas em cascata.
// Erros de permissão são do token do usuário, não do Meta, e não abrem o circuito.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[any]
}

// DefaultBreakerSettings abre o circuito com 60% de falhas em pelo menos 10 requisições
func DefaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
	}
}

func NewCircuitBreakerClient(client Client, settings gobreaker.Settings) *CircuitBreakerClient {
	if settings.IsSuccessful == nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || domain.IsPermissionError(err) || errors.Is(err, context.Canceled)
		}
	}

	onStateChange := settings.OnStateChange
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		logrus.WithFields(logrus.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("Circuit breaker do Meta mudou de estado")
		if onStateChange != nil {
			onStateChange(name, from, to)
		}
	}

	return &CircuitBreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (c *CircuitBreakerClient) GetInsights(ctx context.Context, req InsightsRequest) ([]metadomain.InsightRow, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return c.client.GetInsights(ctx, req)
	})
	if err != nil {
		return nil, c.wrapBreakerError(err)
	}

	rows, _ := result.([]metadomain.InsightRow)
	return rows, nil
}

func (c *CircuitBreakerClient) GetPermissions(ctx context.Context, accessToken string) ([]metadomain.Permission, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return c.client.GetPermissions(ctx, accessToken)
	})
	if err != nil {
		return nil, c.wrapBreakerError(err)
	}

	permissions, _ := result.([]metadomain.Permission)
	return permissions, nil
}

// State expõe o estado atual do circuito para o endpoint de status
func (c *CircuitBreakerClient) State() string {
	return c.cb.State().String()
}

func (c *CircuitBreakerClient) wrapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.TransientFetchError{Message: "circuit breaker do Meta aberto", Err: err}
	}
	return err
}
