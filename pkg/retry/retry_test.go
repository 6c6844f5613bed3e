package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	errTemporary = errors.New("temporário")
	errFatal     = errors.New("permanente")
)

func TestNone(t *testing.T) {
	attempts := 0
	err := None().Do(context.Background(), func() error {
		attempts++
		return errTemporary
	}, nil)

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 1, attempts)
}

func TestNew_ZeroRetriesIsNone(t *testing.T) {
	assert.Equal(t, None(), New(0, time.Millisecond, time.Millisecond, nil))
	assert.IsType(t, Exponential{}, New(2, time.Millisecond, time.Millisecond, nil))
}

func TestExponential(t *testing.T) {
	policy := Exponential{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	onlyTemporary := func(err error) bool { return errors.Is(err, errTemporary) }

	tests := []struct {
		name             string
		failures         []error
		expectedErr      error
		expectedAttempts int
	}{
		{
			name:             "Sucesso após uma falha temporária",
			failures:         []error{errTemporary},
			expectedAttempts: 2,
		},
		{
			name:             "Desiste após esgotar as tentativas",
			failures:         []error{errTemporary, errTemporary, errTemporary, errTemporary},
			expectedErr:      errTemporary,
			expectedAttempts: 3,
		},
		{
			name:             "Erro permanente não é repetido",
			failures:         []error{errFatal},
			expectedErr:      errFatal,
			expectedAttempts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := policy.Do(context.Background(), func() error {
				defer func() { attempts++ }()
				if attempts < len(tt.failures) {
					return tt.failures[attempts]
				}
				return nil
			}, onlyTemporary)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedAttempts, attempts)
		})
	}
}
