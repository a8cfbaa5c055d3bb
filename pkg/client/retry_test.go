package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryTransient_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	attempts, err := retryTransient(context.Background(),
		RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(attempt int) (ErrorKind, error) {
			calls++
			return "", nil
		})

	if err != nil {
		t.Fatalf("retryTransient() failed: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryTransient_SuccessAfterRetry(t *testing.T) {
	calls := 0
	attempts, err := retryTransient(context.Background(),
		RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(attempt int) (ErrorKind, error) {
			calls++
			if calls < 2 {
				return KindServer, errors.New("boom")
			}
			return "", nil
		})

	if err != nil {
		t.Fatalf("retryTransient() failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryTransient_NonRetryableFailsImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	attempts, err := retryTransient(context.Background(),
		RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(attempt int) (ErrorKind, error) {
			calls++
			return KindClient, boom
		})

	if !errors.Is(err, boom) {
		t.Fatalf("Expected the original error, got: %v", err)
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("Non-retryable failures must not report retry exhaustion")
	}
	if attempts != 1 || calls != 1 {
		t.Errorf("attempts = %d, calls = %d, want 1 each", attempts, calls)
	}
}

func TestRetryTransient_Exhaustion(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	attempts, err := retryTransient(context.Background(),
		RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		func(attempt int) (ErrorKind, error) {
			calls++
			return KindServer, boom
		})

	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("Expected ErrRetryExhausted, got: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("Exhaustion error should wrap the last failure")
	}
	if attempts != 3 || calls != 3 {
		t.Errorf("attempts = %d, calls = %d, want 3 each", attempts, calls)
	}
}

func TestRetryTransient_DelayBetweenAttempts(t *testing.T) {
	delay := 20 * time.Millisecond
	start := time.Now()

	_, _ = retryTransient(context.Background(),
		RetryConfig{MaxAttempts: 3, Delay: delay},
		func(attempt int) (ErrorKind, error) {
			return KindServer, errors.New("boom")
		})

	// Two inter-attempt delays for three attempts
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("Elapsed = %v, want at least %v", elapsed, 2*delay)
	}
}

func TestRetryTransient_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := retryTransient(ctx,
			RetryConfig{MaxAttempts: 3, Delay: time.Minute},
			func(attempt int) (ErrorKind, error) {
				calls++
				return KindServer, errors.New("boom")
			})
		done <- err
	}()

	// Let the first attempt land, then cancel during the delay
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrContextCancelled) {
			t.Errorf("Expected ErrContextCancelled, got: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("retryTransient did not return after cancellation")
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
