package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("completion service temporarily unavailable")

// GuardConfig throttles and circuit-breaks calls to a Client.
type GuardConfig struct {
	// RequestsPerMinute is the sustained call rate; zero disables throttling.
	RequestsPerMinute int
	// Burst defaults to a tenth of RequestsPerMinute, at least 1.
	Burst int
	// FailureThreshold consecutive failures open the breaker; zero disables it.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultGuardConfig returns limits below the Gemini free tier.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		RequestsPerMinute: 60,
		FailureThreshold:  5,
		OpenTimeout:       30 * time.Second,
	}
}

// guardedClient wraps a Client with a rate limiter and a circuit breaker.
type guardedClient struct {
	Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// WithGuard wraps client so calls wait for rate-limit tokens and fail fast
// while the provider keeps failing.
func WithGuard(client Client, cfg GuardConfig) Client {
	g := &guardedClient{Client: client}

	if cfg.RequestsPerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(cfg.RequestsPerMinute/10, 1)
		}
		g.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst)
	}

	if cfg.FailureThreshold > 0 {
		threshold := cfg.FailureThreshold
		g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "completion",
			MaxRequests: 1,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("[llm] circuit breaker %s: %s -> %s", name, from, to)
			},
			// Caller cancellations say nothing about provider health.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			},
		})
	}

	return g
}

func (g *guardedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return g.call(ctx, func() (string, error) {
		return g.Client.GenerateContent(ctx, prompt, tier)
	})
}

func (g *guardedClient) Transcribe(ctx context.Context, audio []byte, mimeType, instruction string) (string, error) {
	return g.call(ctx, func() (string, error) {
		return g.Client.Transcribe(ctx, audio, mimeType, instruction)
	})
}

func (g *guardedClient) call(ctx context.Context, fn func() (string, error)) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if g.breaker == nil {
		return fn()
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
