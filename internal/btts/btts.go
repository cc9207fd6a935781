// Package btts builds the both-teams-to-score report for a day of fixtures
// served by a running proxy.
package btts

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/today-api/external/todayapi"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

var bttsBetNames = map[string]struct{}{
	"both teams score":    {},
	"both teams to score": {},
}

type Fixture struct {
	Fixture struct {
		ID   int64  `json:"id"`
		Date string `json:"date"`
	} `json:"fixture"`
	League struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"league"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Odds []Odds `json:"odds"`
}

type Odds struct {
	Bookmakers []struct {
		Bets []struct {
			Name   string `json:"name"`
			Values []struct {
				Value any `json:"value"`
				Odd   any `json:"odd"`
			} `json:"values"`
		} `json:"bets"`
	} `json:"bookmakers"`
}

type Line struct {
	FixtureID int64
	Country   string
	League    string
	Home      string
	Away      string
	Kickoff   time.Time
	YesPct    int
	NoPct     int
}

// Reporter reads fixtures and odds from the proxy.
type Reporter struct {
	client   *todayapi.Client
	location *time.Location
	now      func() time.Time
	logger   *logging.Logger
}

func NewReporter(client *todayapi.Client, location *time.Location, now func() time.Time, logger *logging.Logger) *Reporter {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Reporter{client: client, location: location, now: now, logger: logger.Named("btts")}
}

// Today returns one line per fixture of the current local day that carries a
// BTTS "Yes" quote, in the order the proxy listed the fixtures.
func (r *Reporter) Today(ctx context.Context) ([]Line, error) {
	date := r.now().In(r.location).Format("2006-01-02")
	fixtures, err := todayapi.List[Fixture](ctx, r.client, "/fixtures", url.Values{"date": {date}})
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures for %s: %w", date, err)
	}

	mapper := iter.Mapper[Fixture, *Line]{MaxGoroutines: 8}
	results := mapper.Map(fixtures, func(fx *Fixture) *Line {
		return r.line(ctx, *fx)
	})

	lines := make([]Line, 0, len(results))
	for _, line := range results {
		if line != nil {
			lines = append(lines, *line)
		}
	}
	return lines, nil
}

func (r *Reporter) line(ctx context.Context, fx Fixture) *Line {
	odds := fx.Odds
	if len(odds) == 0 {
		var err error
		odds, err = todayapi.List[Odds](ctx, r.client, "/odds/"+strconv.FormatInt(fx.Fixture.ID, 10), nil)
		if err != nil {
			r.logger.WarnContext(ctx, "odds unavailable", "fixture_id", fx.Fixture.ID, "error", err)
			return nil
		}
	}

	odd, ok := YesOdd(odds)
	if !ok {
		return nil
	}

	yes := OddToPercent(odd)
	line := &Line{
		FixtureID: fx.Fixture.ID,
		Country:   fx.League.Country,
		League:    fx.League.Name,
		Home:      fx.Teams.Home.Name,
		Away:      fx.Teams.Away.Name,
		YesPct:    yes,
		NoPct:     100 - yes,
	}
	if kickoff, err := time.Parse(time.RFC3339, fx.Fixture.Date); err == nil {
		line.Kickoff = kickoff.In(r.location)
	}
	return line
}

// YesOdd returns the first BTTS "Yes" quote across bookmakers.
func YesOdd(odds []Odds) (float64, bool) {
	for _, o := range odds {
		for _, bm := range o.Bookmakers {
			for _, bet := range bm.Bets {
				if _, ok := bttsBetNames[strings.ToLower(strings.TrimSpace(bet.Name))]; !ok {
					continue
				}
				for _, v := range bet.Values {
					if !strings.EqualFold(fmt.Sprint(v.Value), "yes") {
						continue
					}
					odd, err := strconv.ParseFloat(fmt.Sprint(v.Odd), 64)
					if err != nil || odd <= 0 {
						return 0, false
					}
					return odd, true
				}
			}
		}
	}
	return 0, false
}

// OddToPercent converts a decimal quote into an implied percentage.
func OddToPercent(odd float64) int {
	if odd <= 0 {
		return 0
	}
	return int(math.Round(100 / odd))
}

func Render(w io.Writer, lines []Line) error {
	for _, l := range lines {
		kickoff := ""
		if !l.Kickoff.IsZero() {
			kickoff = l.Kickoff.Format("2006-01-02 15:04")
		}
		_, err := fmt.Fprintf(w, "League: %s - %s\nMatch:  %s vs %s\nTime:   %s\n\n- BTTS:\n    - Yes: %d%%\n    - No:  %d%%\n\n",
			l.Country, l.League, l.Home, l.Away, kickoff, l.YesPct, l.NoPct)
		if err != nil {
			return err
		}
	}
	return nil
}
