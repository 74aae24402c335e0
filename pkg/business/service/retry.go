package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultJitter      = 200 * time.Millisecond
)

// Retry исполняет удалённый вызов с экспоненциальной задержкой.
// Нет разделяемого состояния, один экземпляр можно дёргать из разных горутин.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

func NewRetry() *Retry {
	return &Retry{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		Jitter:      defaultJitter,
		sleep:       time.Sleep,
	}
}

// Do runs op until it succeeds, returns a non-retryable error, or the
// attempt ceiling is hit. Only errors carrying a *StatusError with code
// 429 or >=500 are retried; everything else is returned as-is at once.
func (r *Retry) Do(label string, op func() error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := r.BaseDelay * (1 << (attempt - 1))
			if r.Jitter > 0 {
				delay += time.Duration(rand.Int63n(int64(r.Jitter)))
			}
			sleep(delay)
		}

		err := op()
		if err == nil {
			return nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Retryable() {
			return err
		}

		log.Printf("Retryable failure on '%s' (attempt %d/%d): %v", label, attempt+1, maxAttempts, err)
		lastErr = err
	}

	return fmt.Errorf("'%s' failed after %d attempts: %w", label, maxAttempts, lastErr)
}
