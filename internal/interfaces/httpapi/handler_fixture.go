package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/today-api/internal/domain/football"
)

type fixturesByDateRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type fixtureRequest struct {
	FixtureID int64 `validate:"gt=0"`
}

type headToHeadRequest struct {
	Team1ID int64 `validate:"gt=0"`
	Team2ID int64 `validate:"gt=0,nefield=Team1ID"`
}

func (h *Handler) FixturesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixturesByDate")
	defer span.End()

	req := fixturesByDateRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	h.respond(ctx, w, req, func() football.Envelope {
		day, _ := time.Parse("2006-01-02", req.Date)
		return h.fixtureService.FixturesByDate(ctx, day)
	})
}

func (h *Handler) FixturesToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixturesToday")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.FixturesToday(ctx))
}

func (h *Handler) FixturesYesterday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixturesYesterday")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.FixturesYesterday(ctx))
}

func (h *Handler) FixturesTomorrow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixturesTomorrow")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.FixturesTomorrow(ctx))
}

func (h *Handler) LiveFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveFixtures")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.LiveFixtures(ctx))
}

// perFixture serves the routes keyed by a single {fixtureID}.
func (h *Handler) perFixture(w http.ResponseWriter, r *http.Request, spanName string, fetch func(ctx context.Context, fixtureID int64) football.Envelope) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	id, err := pathInt64(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := fixtureRequest{FixtureID: id}
	h.respond(ctx, w, req, func() football.Envelope {
		return fetch(ctx, req.FixtureID)
	})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	h.perFixture(w, r, "httpapi.Handler.Events", h.fixtureService.Events)
}

func (h *Handler) Lineups(w http.ResponseWriter, r *http.Request) {
	h.perFixture(w, r, "httpapi.Handler.Lineups", h.fixtureService.Lineups)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.perFixture(w, r, "httpapi.Handler.Statistics", h.fixtureService.Statistics)
}

func (h *Handler) Predictions(w http.ResponseWriter, r *http.Request) {
	h.perFixture(w, r, "httpapi.Handler.Predictions", h.fixtureService.Predictions)
}

func (h *Handler) Odds(w http.ResponseWriter, r *http.Request) {
	h.perFixture(w, r, "httpapi.Handler.Odds", h.fixtureService.Odds)
}

func (h *Handler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HeadToHead")
	defer span.End()

	team1, err := pathInt64(r, "team1ID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	team2, err := pathInt64(r, "team2ID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := headToHeadRequest{Team1ID: team1, Team2ID: team2}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.fixtureService.HeadToHead(ctx, req.Team1ID, req.Team2ID)
	})
}

func (h *Handler) LiveOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveOdds")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.LiveOdds(ctx))
}

func (h *Handler) LiveOddsBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveOddsBets")
	defer span.End()

	writeEnvelope(ctx, w, h.fixtureService.LiveOddsBets(ctx))
}
