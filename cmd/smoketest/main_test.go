package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/today-api/external/todayapi"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/today-api/internal/platform/cache"
	"github.com/riskibarqy/today-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyProvider struct{}

func (emptyProvider) Get(context.Context, string, football.Query) (football.Envelope, error) {
	return football.Empty(), nil
}

func TestRun_AllRoutesServedByRouter(t *testing.T) {
	t.Parallel()

	manager := cache.NewManager(nil)
	gateway := usecase.NewGateway(emptyProvider{}, manager, nil)
	fixtures, err := usecase.NewFixtureService(gateway, usecase.FixtureServiceConfig{}, nil)
	require.NoError(t, err)
	handler := httpapi.NewHandler(fixtures, usecase.NewReferenceService(gateway, nil), manager, nil)

	srv := httptest.NewServer(httpapi.NewRouter(handler, nil, []string{"*"}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	failed := run(context.Background(), todayapi.NewClient(todayapi.ClientConfig{BaseURL: srv.URL}), routes, &out)

	assert.Zero(t, failed, out.String())
}

func TestRun_ReportsEveryRouteInOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/teams" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"response":[]}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	failed := run(context.Background(), todayapi.NewClient(todayapi.ClientConfig{BaseURL: srv.URL}), []string{"/", "/teams", "/leagues"}, &out)

	assert.Equal(t, 1, failed)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"OK   /",
		"WARN /teams returned 400",
		"OK   /leagues",
	}, lines)
}

func TestRun_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	var out bytes.Buffer
	failed := run(context.Background(), todayapi.NewClient(todayapi.ClientConfig{BaseURL: base}), []string{"/"}, &out)

	assert.Equal(t, 1, failed)
	assert.True(t, strings.HasPrefix(out.String(), "FAIL /:"))
}

func TestRoutesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		_, dup := seen[r]
		assert.False(t, dup, r)
		seen[r] = struct{}{}
	}
}
