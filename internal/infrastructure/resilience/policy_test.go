package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

func testPolicies() map[string]PolicyConfig {
	return map[string]PolicyConfig{
		"main": {
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
			CallTimeout:     time.Second,
			BreakerFailures: 3,
			BreakerCooldown: 50 * time.Millisecond,
		},
	}
}

func TestExecuteRetriesTransientFailures(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	calls := 0
	result, err := Execute(context.Background(), e, "main", "flaky", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection refused")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteExhaustionReturnsStableCode(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	calls := 0
	_, err := Execute(context.Background(), e, "main", "down", func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("connection refused")
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "REMOTE_CALL_EXHAUSTED", derr.Code)
	assert.Equal(t, 3, calls)
}

func TestExecuteDoesNotRetryDomainErrors(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	calls := 0
	_, err := Execute(context.Background(), e, "main", "lookup", func(ctx context.Context) (string, error) {
		calls++
		return "", shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", derr.Code)
	assert.Equal(t, 1, calls)
}

func TestBreakerOpensAndShortCircuits(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	// Three exhausted executions trip the breaker.
	for i := 0; i < 3; i++ {
		_, err := Execute(context.Background(), e, "main", "down", func(ctx context.Context) (int, error) {
			return 0, errors.New("connection refused")
		})
		require.Error(t, err)
	}

	calls := 0
	_, err := Execute(context.Background(), e, "main", "down", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "REMOTE_CALL_EXHAUSTED", derr.Code)
	assert.Zero(t, calls, "open breaker must not invoke the operation")
}

func TestBreakerIgnoresDomainErrors(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	for i := 0; i < 10; i++ {
		_, err := Execute(context.Background(), e, "main", "lookup", func(ctx context.Context) (int, error) {
			return 0, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		})
		require.Error(t, err)
	}

	calls := 0
	_, err := Execute(context.Background(), e, "main", "lookup", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "rejections must not trip the breaker")
}

func TestExecuteUnknownPolicyFallsBackToMain(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	result, err := Execute(context.Background(), e, "nope", "op", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}

func TestExecuteVoid(t *testing.T) {
	e := NewExecutor(testPolicies(), zap.NewNop())

	err := ExecuteVoid(context.Background(), e, "main", "op", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
}
