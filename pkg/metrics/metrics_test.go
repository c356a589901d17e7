package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "404"))
	ObserveRequest("GET", 404, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "404")))
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(cacheHitsTotal)
	misses := testutil.ToFloat64(cacheMissesTotal)

	CacheHit()
	CacheMiss()
	CacheMiss()

	assert.Equal(t, hits+1, testutil.ToFloat64(cacheHitsTotal))
	assert.Equal(t, misses+2, testutil.ToFloat64(cacheMissesTotal))
}

func TestPaginationCounters(t *testing.T) {
	PageFetched("tag")
	PaginationStopped("limit")
	LoginOutcome("reused")

	assert.GreaterOrEqual(t, testutil.ToFloat64(pagesFetchedTotal.WithLabelValues("tag")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(paginationStopsTotal.WithLabelValues("limit")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(loginsTotal.WithLabelValues("reused")), 1.0)
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRequest("POST", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "igclient_http_requests_total")
}
