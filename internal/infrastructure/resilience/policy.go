// Package resilience wraps remote calls with retry and circuit-breaker
// policies. Policies are named and shared by configuration; every
// cross-service call in the application layer goes through Execute.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// ErrRemoteCallExhausted is returned when retries are exhausted or the
// circuit is open. Callers treat it as a dependency failure, not a
// business rejection.
var ErrRemoteCallExhausted = shared.NewDomainError("REMOTE_CALL_EXHAUSTED", "Remote call failed after retries")

// PolicyConfig tunes one named policy.
type PolicyConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	CallTimeout     time.Duration `mapstructure:"call_timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// DefaultPolicies returns the built-in policy set. "main" guards
// single-entity calls, "getAll" guards collection reads which tolerate
// less waiting.
func DefaultPolicies() map[string]PolicyConfig {
	return map[string]PolicyConfig{
		"main": {
			MaxAttempts:     3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			CallTimeout:     5 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		"getAll": {
			MaxAttempts:     2,
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     500 * time.Millisecond,
			CallTimeout:     3 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
	}
}

// Executor holds the configured policies and one circuit breaker per
// policy name. Breakers are shared by all operations using a policy so
// a failing dependency trips them together.
type Executor struct {
	mu       sync.Mutex
	policies map[string]PolicyConfig
	breakers map[string]*gobreaker.CircuitBreaker[any]
	logger   *zap.Logger
}

// NewExecutor creates an executor. Unknown policy names fall back to
// "main"; if that is missing too, built-in defaults apply.
func NewExecutor(policies map[string]PolicyConfig, logger *zap.Logger) *Executor {
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}
	return &Executor{
		policies: policies,
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
		logger:   logger,
	}
}

func (e *Executor) policy(name string) PolicyConfig {
	if cfg, ok := e.policies[name]; ok {
		return cfg
	}
	if cfg, ok := e.policies["main"]; ok {
		return cfg
	}
	return DefaultPolicies()["main"]
}

func (e *Executor) breaker(name string) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cb, ok := e.breakers[name]; ok {
		return cb
	}
	cfg := e.policy(name)
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    name,
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Business rejections do not indicate dependency health.
			var derr *shared.DomainError
			return err == nil || errors.As(err, &derr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if e.logger != nil {
				e.logger.Warn("Circuit breaker state change",
					zap.String("policy", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			}
		},
	})
	e.breakers[name] = cb
	return cb
}

// Execute runs op under the named policy: each attempt gets its own
// timeout, transient failures are retried with exponential backoff,
// and the policy's breaker short-circuits when the dependency is down.
// Domain errors pass through untouched; everything else surfaces as
// REMOTE_CALL_EXHAUSTED.
func Execute[T any](ctx context.Context, e *Executor, policyName, opName string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	cfg := e.policy(policyName)
	cb := e.breaker(policyName)

	result, err := cb.Execute(func() (any, error) {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = cfg.InitialInterval
		bo.MaxInterval = cfg.MaxInterval
		bo.MaxElapsedTime = 0

		attempts := uint64(0)
		if cfg.MaxAttempts > 1 {
			attempts = uint64(cfg.MaxAttempts - 1)
		}

		return backoff.RetryWithData(func() (any, error) {
			callCtx := ctx
			var cancel context.CancelFunc
			if cfg.CallTimeout > 0 {
				callCtx, cancel = context.WithTimeout(ctx, cfg.CallTimeout)
				defer cancel()
			}
			v, opErr := op(callCtx)
			if opErr != nil {
				var derr *shared.DomainError
				if errors.As(opErr, &derr) {
					// Rejections are not transient.
					return nil, backoff.Permanent(opErr)
				}
				return nil, opErr
			}
			return v, nil
		}, backoff.WithContext(backoff.WithMaxRetries(bo, attempts), ctx))
	})
	if err != nil {
		var derr *shared.DomainError
		if errors.As(err, &derr) && derr.Code != ErrRemoteCallExhausted.Code {
			return zero, err
		}
		if e.logger != nil {
			e.logger.Error("Remote call exhausted",
				zap.String("policy", policyName),
				zap.String("operation", opName),
				zap.Error(err))
		}
		return zero, ErrRemoteCallExhausted
	}
	if result == nil {
		return zero, nil
	}
	return result.(T), nil
}

// ExecuteVoid runs an operation with no return value under a policy.
func ExecuteVoid(ctx context.Context, e *Executor, policyName, opName string, op func(context.Context) error) error {
	_, err := Execute(ctx, e, policyName, opName, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
