package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainerweb/internal/repository"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "https with path", baseURL: "https://backend.example/api"},
		{name: "trailing slash", baseURL: "http://localhost:8081/api/"},
		{name: "no scheme", baseURL: "backend.example/api", wantErr: true},
		{name: "ftp", baseURL: "ftp://backend.example", wantErr: true},
		{name: "no host", baseURL: "http:///api", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(c.BaseURL(), "/"))
		})
	}
}

func TestClient_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)

	assert.NoError(t, c.Ping(context.Background()))

	status.Store(http.StatusNotFound)
	assert.NoError(t, c.Ping(context.Background()))

	status.Store(http.StatusBadGateway)
	assert.ErrorIs(t, c.Ping(context.Background()), repository.ErrUnexpectedStatus)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	err = c.do(context.Background(), "test", http.MethodGet, "/slow", nil, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrUnexpectedStatus)
}

func TestClient_TimeoutDoesNotTouchSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: 7 * time.Second}

	for name, opts := range map[string][]Option{
		"client then timeout": {WithHTTPClient(shared), WithTimeout(time.Second)},
		"timeout then client": {WithTimeout(time.Second), WithHTTPClient(shared)},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewClient("http://backend.example/api", opts...)
			require.NoError(t, err)

			assert.Equal(t, time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
			assert.Equal(t, 7*time.Second, shared.Timeout)
		})
	}

	c, err := NewClient("http://backend.example/api", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, c.http.Timeout)
}

func TestMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c, err := NewClient(srv.URL, WithMetrics(m))
	require.NoError(t, err)

	require.NoError(t, c.do(context.Background(), "things.delete", http.MethodDelete, "/things/1", nil, nil))
	require.Error(t, c.do(context.Background(), "things.delete", http.MethodDelete, "/missing", nil, nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("things.delete", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("things.delete", "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "second registration on the same registry must fail")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("op", "2xx", time.Second) })
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(201))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(503))
}
