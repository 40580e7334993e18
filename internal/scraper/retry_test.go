package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fakeTimer fires immediately and records every requested wait.
type fakeTimer struct {
	waits []time.Duration
	c     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1)}
}

func (f *fakeTimer) Start(d time.Duration) {
	f.waits = append(f.waits, d)
	f.c <- time.Time{}
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time { return f.c }

func rateLimited(retryAfter string) error {
	h := http.Header{}
	if retryAfter != "" {
		h.Set("Retry-After", retryAfter)
	}
	return &StatusError{URL: "https://sofifa.test", Code: http.StatusTooManyRequests, Header: h}
}

func TestRetryPolicy_WaitsRetryAfter(t *testing.T) {
	timer := newFakeTimer()
	policy := RetryPolicy{Timer: timer}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return rateLimited("2")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(timer.waits) != 1 || timer.waits[0] != 2*time.Second {
		t.Errorf("waits = %v, want [2s]", timer.waits)
	}
}

func TestRetryPolicy_DefaultWait(t *testing.T) {
	tests := []struct {
		name        string
		defaultWait time.Duration
		retryAfter  string
		want        time.Duration
	}{
		{"missing header uses 15s", 0, "", 15 * time.Second},
		{"garbage header uses fallback", 0, "soon", 15 * time.Second},
		{"configured fallback", 3 * time.Second, "", 3 * time.Second},
		{"float seconds", 0, "1.5", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := newFakeTimer()
			policy := RetryPolicy{DefaultWait: tt.defaultWait, Timer: timer}

			calls := 0
			err := policy.Do(context.Background(), func() error {
				calls++
				if calls == 1 {
					return rateLimited(tt.retryAfter)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			if len(timer.waits) != 1 || timer.waits[0] != tt.want {
				t.Errorf("waits = %v, want [%v]", timer.waits, tt.want)
			}
		})
	}
}

func TestRetryPolicy_OverflowingRetryAfter(t *testing.T) {
	timer := newFakeTimer()
	policy := RetryPolicy{Timer: timer}

	headers := []string{"Inf", "NaN", "1e10"}
	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls <= len(headers) {
			return rateLimited(headers[calls-1])
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	want := []time.Duration{DefaultRetryWait, DefaultRetryWait, MaxRetryWait}
	if len(timer.waits) != len(want) {
		t.Fatalf("waits = %v, want %v", timer.waits, want)
	}
	for i, w := range want {
		if timer.waits[i] != w {
			t.Errorf("wait %d = %v, want %v", i, timer.waits[i], w)
		}
	}
}

func TestRetryPolicy_KeepsRetrying(t *testing.T) {
	timer := newFakeTimer()
	policy := RetryPolicy{Timer: timer}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls <= 25 {
			return rateLimited("1")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 26 {
		t.Errorf("calls = %d, want 26", calls)
	}
	if len(timer.waits) != 25 {
		t.Errorf("waits = %d, want 25", len(timer.waits))
	}
}

func TestRetryPolicy_NonRateLimitedNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"server error", &StatusError{Code: http.StatusInternalServerError, Header: http.Header{}}},
		{"not found", &StatusError{Code: http.StatusNotFound, Header: http.Header{}}},
		{"extraction error", errors.New("could not find the player identifier")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := newFakeTimer()
			policy := RetryPolicy{Timer: timer}

			calls := 0
			err := policy.Do(context.Background(), func() error {
				calls++
				return tt.err
			})

			if !errors.Is(err, tt.err) {
				t.Errorf("Do() error = %v, want %v", err, tt.err)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want 1", calls)
			}
			if len(timer.waits) != 0 {
				t.Errorf("waits = %v, want none", timer.waits)
			}
		})
	}
}

func TestRetryPolicy_MaxRetries(t *testing.T) {
	timer := newFakeTimer()
	policy := RetryPolicy{MaxRetries: 3, Timer: timer}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return rateLimited("1")
	})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || !statusErr.RateLimited() {
		t.Fatalf("Do() error = %v, want rate limited StatusError", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", calls)
	}
}

func TestRetryPolicy_Notify(t *testing.T) {
	var notified []time.Duration
	policy := RetryPolicy{
		Timer: newFakeTimer(),
		Notify: func(err error, wait time.Duration) {
			notified = append(notified, wait)
		},
	}

	calls := 0
	policy.Do(context.Background(), func() error { // nolint:errcheck
		calls++
		switch calls {
		case 1:
			return rateLimited("4")
		case 2:
			return rateLimited("")
		}
		return nil
	})

	if len(notified) != 2 || notified[0] != 4*time.Second || notified[1] != DefaultRetryWait {
		t.Errorf("notified = %v, want [4s 15s]", notified)
	}
}

func TestRetryPolicy_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{Timer: newFakeTimer()}
	err := policy.Do(ctx, func() error { return rateLimited("1") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

// A 429 with Retry-After: 2 followed by a 200 waits exactly once for 2s.
func TestRetryPolicy_AgainstServer(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`<table><tr><th>a</th></tr><tr><th>b</th></tr><tr><td>ok</td></tr></table>`)) // nolint:errcheck
	}))
	defer server.Close()

	client, _ := newTestClient()
	timer := newFakeTimer()
	policy := RetryPolicy{Timer: timer}

	var page Page
	err := policy.Do(context.Background(), func() error {
		var err error
		page, err = client.FetchPage(context.Background(), server.URL)
		return err
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
	if len(timer.waits) != 1 || timer.waits[0] != 2*time.Second {
		t.Errorf("waits = %v, want [2s]", timer.waits)
	}
	if got := collect(page, HeaderRows); len(got) != 1 || got[0] != "ok" {
		t.Errorf("rows = %v, want [ok]", got)
	}
}

func TestRetryAfter(t *testing.T) {
	fallback := 15 * time.Second
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", fallback},
		{"0", 0},
		{"2", 2 * time.Second},
		{" 7 ", 7 * time.Second},
		{"0.25", 250 * time.Millisecond},
		{"-3", fallback},
		{"tomorrow", fallback},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"Fri, 01 Jan 9999 00:00:00 GMT", MaxRetryWait},
		{"Inf", fallback},
		{"-Inf", fallback},
		{"NaN", fallback},
		{"1e10", MaxRetryWait},
		{"1e300", MaxRetryWait},
		{"86399", 86399 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set("Retry-After", tt.value)
			}
			got := RetryAfter(h, fallback)
			if got != tt.want {
				t.Errorf("RetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
			if got < 0 {
				t.Errorf("RetryAfter(%q) = %v, must never be negative", tt.value, got)
			}
		})
	}
}
