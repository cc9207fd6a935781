package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/resilience"
	"github.com/riskibarqy/today-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		BaseURL:        srv.URL,
		APIKey:         "secret-key",
		Timeout:        2 * time.Second,
		CircuitBreaker: breaker,
	})
}

func TestClient_Get_SendsKeyAndQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-apisports-key"))
		assert.Equal(t, "2025-06-15", r.URL.Query().Get("date"))
		assert.Equal(t, "Europe/Belgrade", r.URL.Query().Get("timezone"))
		assert.False(t, r.URL.Query().Has("league"), "empty params must be dropped")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get":"fixtures","results":1,"response":[{"fixture":{"id":215662}}]}`))
	}, resilience.CircuitBreakerConfig{})

	env, err := client.Get(context.Background(), "fixtures", football.Query{
		"date":     "2025-06-15",
		"timezone": "Europe/Belgrade",
		"league":   "",
	})
	require.NoError(t, err)
	require.Len(t, env.Response, 1)
	assert.Equal(t, "fixtures", env.Extra["get"])
}

func TestClient_Get_WrapsObjectResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"team":{"id":33},"form":"WWDLW"}}`))
	}, resilience.CircuitBreakerConfig{})

	env, err := client.Get(context.Background(), "/teams/statistics", football.Query{"team": "33"})
	require.NoError(t, err)
	require.Len(t, env.Response, 1)
	stats, ok := env.Response[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "WWDLW", stats["form"])
}

func TestClient_Get_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"boom"}`},
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"invalid key"}`},
		{name: "not json", status: http.StatusOK, body: `<html>maintenance</html>`, malformed: true},
		{name: "missing response", status: http.StatusOK, body: `{"errors":{"token":"invalid"}}`, malformed: true},
		{name: "array body", status: http.StatusOK, body: `[1,2,3]`, malformed: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, resilience.CircuitBreakerConfig{})

			env, err := client.Get(context.Background(), "leagues", nil)
			require.Error(t, err)
			assert.Equal(t, tc.malformed, crerr.Is(err, ErrMalformedBody), "err=%v", err)
			assert.NotNil(t, env.Response)
			assert.Empty(t, env.Response)
			assert.NotContains(t, err.Error(), "secret-key")
		})
	}
}

func TestClient_Get_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{BaseURL: baseURL, APIKey: "secret-key", Timeout: time.Second})
	_, err := client.Get(context.Background(), "leagues", nil)
	require.Error(t, err)
	assert.True(t, isTransient(err))
}

func TestClient_Get_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), "odds/live", nil)
		require.Error(t, err)
	}

	_, err := client.Get(context.Background(), "odds/live", nil)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Get_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"response":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second, MaxRetries: 1})
	env, err := client.Get(context.Background(), "leagues/seasons", nil)
	require.NoError(t, err)
	assert.Empty(t, env.Response)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Get_SharesInFlightRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"response":[{"league":{"id":39}}]}`))
	}, resilience.CircuitBreakerConfig{})

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	results := make([]football.Envelope, callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			env, err := client.Get(context.Background(), "leagues", nil)
			assert.NoError(t, err)
			results[i] = env
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, env := range results {
		assert.Len(t, env.Response, 1)
	}
}

func TestClient_BuildURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "https://v3.football.api-sports.io/"})
	got := client.buildURL("/fixtures/headtohead", football.Query{"h2h": "33-34"})
	assert.Equal(t, "https://v3.football.api-sports.io/fixtures/headtohead?h2h=33-34", got)

	got = client.buildURL("leagues", nil)
	assert.Equal(t, "https://v3.football.api-sports.io/leagues", got)
}
