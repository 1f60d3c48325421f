package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsRouter(m *Metrics, status int) *chi.Mux {
	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "storefront")
	r := metricsRouter(m, http.StatusOK)

	for _, id := range []string{"1", "2", "3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products/{id}", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requests), "ids must not create label values")
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_StatusCapture(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusServiceUnavailable} {
		reg := prometheus.NewRegistry()
		m := NewMetrics(reg, "storefront")
		r := metricsRouter(m, status)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/9", nil))

		assert.Equal(t, status, rr.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products/{id}", strconv.Itoa(status))))
	}
}

func TestMetrics_ImplicitStatusIs200(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "storefront")
	r := metricsRouter(m, http.StatusOK)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/implicit", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/implicit", "200")))
}

func TestMetrics_InFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "storefront")

	var during float64
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(m.inFlight)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_UnroutedPathIsUnknown(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "storefront")

	h := m.Handler(okHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whatever", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "200")))
}

func TestMetrics_ServiceConstLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "storefront")
	m.Handler(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	expected := `
# HELP http_requests_in_flight Current number of HTTP requests being served
# TYPE http_requests_in_flight gauge
http_requests_in_flight{service="storefront"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_in_flight"))
}
