// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "article view",
			method:     "GET",
			endpoint:   "/api/v1/article/{articleID}",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "feedback submission",
			method:     "POST",
			endpoint:   "/api/v1/feedback",
			statusCode: "200",
			duration:   15 * time.Millisecond,
		},
		{
			name:       "unknown article",
			method:     "GET",
			endpoint:   "/api/v1/recommendation/{articleID}/{recommendationID}",
			statusCode: "404",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "rate limited request",
			method:     "POST",
			endpoint:   "/api/v1/sus",
			statusCode: "429",
			duration:   time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after-before != 1 {
				t.Errorf("api_requests_total delta = %v, want 1", after-before)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test_cache"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test_cache"))

	RecordCacheLookup("test_cache", false)
	RecordCacheLookup("test_cache", true)
	RecordCacheLookup("test_cache", true)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test_cache")) - hits; got != 2 {
		t.Errorf("cache hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test_cache")) - misses; got != 1 {
		t.Errorf("cache misses delta = %v, want 1", got)
	}
}

func TestRecordFeedbackWrite(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		err    error
		result string
	}{
		{"successful rating", "rating", nil, "success"},
		{"failed rating", "rating", errors.New("store unavailable"), "error"},
		{"successful sus", "sus", nil, "success"},
		{"successful company", "company", nil, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := FeedbackWrites.WithLabelValues(tt.kind, tt.result)
			before := testutil.ToFloat64(counter)
			RecordFeedbackWrite(tt.kind, tt.err)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("feedback writes delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	before := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/feedback"))
	RecordRateLimitHit("/api/v1/feedback")
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/feedback")) - before; got != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", got)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.0.0-test", "go1.24")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.0.0-test", "go1.24")); got != 1 {
		t.Errorf("app_info = %v, want 1", got)
	}
}

func TestStudyMetrics(t *testing.T) {
	ArticlesLoaded.WithLabelValues("reference").Set(42)
	if got := testutil.ToFloat64(ArticlesLoaded.WithLabelValues("reference")); got != 42 {
		t.Errorf("articles loaded = %v, want 42", got)
	}

	before := testutil.ToFloat64(SessionsCreated)
	SessionsCreated.Inc()
	if got := testutil.ToFloat64(SessionsCreated) - before; got != 1 {
		t.Errorf("sessions created delta = %v, want 1", got)
	}

	ExportedRecords.Set(7)
	if got := testutil.ToFloat64(ExportedRecords); got != 7 {
		t.Errorf("exported records = %v, want 7", got)
	}
	ExportDuration.Observe(0.25)
	ExportsTotal.WithLabelValues("throttled").Inc()
}

func TestCircuitBreakerMetrics(t *testing.T) {
	CircuitBreakerState.WithLabelValues("metrics-test").Set(2)
	CircuitBreakerRequests.WithLabelValues("metrics-test", "rejected").Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues("metrics-test").Set(5)
	CircuitBreakerTransitions.WithLabelValues("metrics-test", "closed", "open").Inc()

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("metrics-test")); got != 2 {
		t.Errorf("breaker state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerConsecutiveFailures.WithLabelValues("metrics-test")); got != 5 {
		t.Errorf("consecutive failures = %v, want 5", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 50
	operationsPerGoroutine := 20

	before := testutil.ToFloat64(CacheHits.WithLabelValues("concurrent"))

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("GET", "/api/v1/concurrent", "200", time.Duration(j)*time.Millisecond)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
				RecordCacheLookup("concurrent", true)
			}
		}()
	}
	wg.Wait()

	want := float64(numGoroutines * operationsPerGoroutine)
	if got := testutil.ToFloat64(CacheHits.WithLabelValues("concurrent")) - before; got != want {
		t.Errorf("concurrent cache hits = %v, want %v", got, want)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		ArticlesLoaded,
		CacheHits,
		CacheMisses,
		SessionsCreated,
		FeedbackWrites,
		ExportsTotal,
		ExportDuration,
		ExportedRecords,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		AppInfo,
		AppUptime,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/article/{articleID}", "200", 25*time.Millisecond)
	}
}

func BenchmarkRecordCacheLookup(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordCacheLookup("recommendations", i%2 == 0)
	}
}
