package scraper

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultRetryWait is used when a 429 carries no usable Retry-After header.
const DefaultRetryWait = 15 * time.Second

// MaxRetryWait caps a single Retry-After wait.
const MaxRetryWait = 24 * time.Hour

// RetryPolicy re-runs an operation for as long as it fails with HTTP 429.
// The zero value retries forever with DefaultRetryWait as the fallback wait.
type RetryPolicy struct {
	// DefaultWait is the wait used when Retry-After is missing or unparsable.
	DefaultWait time.Duration
	// MaxRetries bounds the number of retries. Zero means unbounded.
	MaxRetries uint64
	// Timer drives the waits; nil uses a real timer.
	Timer backoff.Timer
	// Notify is called before every wait.
	Notify func(err error, wait time.Duration)
}

// Do runs op until it succeeds, fails with anything other than a 429, the retry
// bound is reached or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	fallback := p.DefaultWait
	if fallback <= 0 {
		fallback = DefaultRetryWait
	}

	wait := &retryAfter{fallback: fallback, next: fallback}
	var b backoff.BackOff = wait
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.MaxRetries)
	}
	b = backoff.WithContext(b, ctx)

	var notify backoff.Notify
	if p.Notify != nil {
		notify = backoff.Notify(p.Notify)
	}

	return backoff.RetryNotifyWithTimer(func() error {
		err := op()
		if err == nil {
			return nil
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.RateLimited() {
			wait.next = RetryAfter(statusErr.Header, fallback)
			return err
		}
		return backoff.Permanent(err)
	}, b, notify, p.Timer)
}

// RetryAfter reads the Retry-After header as seconds (integer or float) or as an
// HTTP date. It returns fallback when the header is absent, negative or not a
// finite number; waits longer than MaxRetryWait are clamped to it.
func RetryAfter(h http.Header, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return fallback
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return fallback
		}
		if secs >= MaxRetryWait.Seconds() {
			return MaxRetryWait
		}
		return time.Duration(secs * float64(time.Second))
	}
	if at, err := http.ParseTime(v); err == nil {
		return min(max(time.Until(at), 0), MaxRetryWait)
	}
	return fallback
}

// retryAfter is a backoff.BackOff whose next interval is set by the operation
// from the last 429 response.
type retryAfter struct {
	fallback time.Duration
	next     time.Duration
}

func (r *retryAfter) NextBackOff() time.Duration { return r.next }

func (r *retryAfter) Reset() { r.next = r.fallback }
