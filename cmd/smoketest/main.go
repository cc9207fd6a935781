package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/riskibarqy/today-api/external/todayapi"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

var routes = []string{
	"/",
	"/fixtures?date=2025-06-15",
	"/live",
	"/fixtures/events/215662",
	"/fixtures/lineups/215662",
	"/fixtures/statistics/215662",
	"/fixtures/headtohead/33/34",
	"/odds/215662",
	"/predictions/215662",
	"/odds/live",
	"/odds/live/bets",
	"/standings/39",
	"/leagues",
	"/leagues/seasons",
	"/teams",
	"/teams/statistics/33/39",
	"/teams/countries",
	"/players?team_id=33&season=2024",
	"/players/statistics/276/39",
	"/players/topscorers/39",
	"/players/topassists/39",
	"/players/topyellowcards/39",
	"/players/topredcards/39",
	"/players/squads/33/2024",
	"/injuries/39",
	"/injuries?ids=215662,215663",
	"/sidelined?players=276&coachs=34",
	"/transfers/276",
	"/coachs?team_id=33",
	"/trophies?players=276",
}

type result struct {
	route  string
	status int
	err    error
}

func (r result) String() string {
	switch {
	case r.err != nil:
		return fmt.Sprintf("FAIL %s: %v", r.route, r.err)
	case r.status == http.StatusOK:
		return fmt.Sprintf("OK   %s", r.route)
	default:
		return fmt.Sprintf("WARN %s returned %d", r.route, r.status)
	}
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8000", "proxy base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "per request timeout")
	flag.Parse()

	logger := logging.NewJSONTo(os.Stderr, logging.LevelWarn)
	client := todayapi.NewClient(todayapi.ClientConfig{BaseURL: *baseURL, Timeout: *timeout, Logger: logger})

	if failed := run(context.Background(), client, routes, os.Stdout); failed > 0 {
		os.Exit(1)
	}
}

// run checks every route concurrently and prints one line per route in
// route order. It returns the number of routes that did not answer 200.
func run(ctx context.Context, client *todayapi.Client, targets []string, w io.Writer) int {
	results := make([]result, len(targets))

	p := pool.New().WithMaxGoroutines(8)
	for i, route := range targets {
		p.Go(func() {
			status, err := client.Status(ctx, route)
			results[i] = result{route: route, status: status, err: err}
		})
	}
	p.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil || r.status != http.StatusOK {
			failed++
		}
		_, _ = fmt.Fprintln(w, r)
	}
	return failed
}
