// Package retry define a política de novas tentativas usada nas chamadas ao Meta
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy decide se e quando uma operação falha deve ser repetida.
// retryable pode ser nil, e nesse caso todo erro é repetido.
type Policy interface {
	Do(ctx context.Context, op func() error, retryable func(error) bool) error
}

type none struct{}

// None executa a operação uma única vez
func None() Policy {
	return none{}
}

func (none) Do(_ context.Context, op func() error, _ func(error) bool) error {
	return op()
}

// Exponential repete com backoff exponencial até MaxRetries vezes
type Exponential struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	OnRetry         func(err error, wait time.Duration)
}

// New escolhe a política a partir da configuração: zero tentativas extras vira None
func New(maxRetries int, initial, max time.Duration, onRetry func(error, time.Duration)) Policy {
	if maxRetries <= 0 {
		return None()
	}
	return Exponential{
		MaxRetries:      uint64(maxRetries),
		InitialInterval: initial,
		MaxInterval:     max,
		OnRetry:         onRetry,
	}
}

func (p Exponential) Do(ctx context.Context, op func() error, retryable func(error) bool) error {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && retryable != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, p.OnRetry)
}
