package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudservices/kbot/types"
)

// SentinelEmptyResponse is returned when a generation stream completes
// without yielding any text.
const SentinelEmptyResponse = "No response generated by the model."

// Generator performs one streaming generation attempt. Fragments are passed
// to the handler in arrival order; a nil error means the stream completed.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error
}

// GenerationError reports that every attempt at a generation failed.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Invoker wraps a Generator with bounded retry. Each attempt accumulates its
// own fragments; fragments from a failed attempt are discarded wholesale so
// the result never mixes two attempts.
type Invoker struct {
	generator      Generator
	maxAttempts    int
	initialBackoff time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewInvoker(generator Generator, maxAttempts int, initialBackoff time.Duration) *Invoker {
	return &Invoker{
		generator:      generator,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		sleep:          sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Invoke runs the prompt against the generator, retrying with doubling
// backoff on failure. On success the accumulated text of exactly that
// attempt is returned; an empty stream yields SentinelEmptyResponse.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return inv.InvokeStream(ctx, prompt, nil)
}

// InvokeStream is Invoke with fragment delivery: once an attempt succeeds,
// its fragments are replayed to the handler in arrival order. Fragments of
// failed attempts are never delivered.
func (inv *Invoker) InvokeStream(ctx context.Context, prompt string, handler types.StreamHandler) (string, error) {
	var fragments []string
	backoff := inv.initialBackoff
	var lastErr error

	for attempt := 1; attempt <= inv.maxAttempts; attempt++ {
		log.Printf("Invoking model (attempt %d of %d)...", attempt, inv.maxAttempts)
		fragments = fragments[:0]
		err := inv.generator.GenerateStream(ctx, prompt, func(fragment string) {
			fragments = append(fragments, fragment)
		})
		if err == nil {
			result := ""
			for _, f := range fragments {
				if handler != nil {
					handler(f)
				}
				result += f
			}
			if result == "" {
				log.Println("The model response is empty, substituting sentinel.")
				if handler != nil {
					handler(SentinelEmptyResponse)
				}
				return SentinelEmptyResponse, nil
			}
			return result, nil
		}

		lastErr = err
		log.Printf("Error invoking model (attempt %d): %v", attempt, err)
		if attempt == inv.maxAttempts {
			break
		}
		log.Printf("Retrying in %s...", backoff)
		if err := inv.sleep(ctx, backoff); err != nil {
			return "", &GenerationError{Attempts: attempt, Err: err}
		}
		backoff *= 2
	}

	return "", &GenerationError{Attempts: inv.maxAttempts, Err: lastErr}
}
