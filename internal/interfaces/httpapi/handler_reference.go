package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/usecase"
)

type leagueRequest struct {
	LeagueID int64 `validate:"gt=0"`
}

type pairRequest struct {
	SubjectID int64 `validate:"gt=0"`
	LeagueID  int64 `validate:"gt=0"`
}

type teamSeasonRequest struct {
	TeamID int64 `validate:"gt=0"`
	Season int64 `validate:"gte=1900,lte=2100"`
}

type playerRequest struct {
	PlayerID int64 `validate:"gt=0"`
}

type teamsRequest struct {
	Country  string `validate:"omitempty,max=64"`
	LeagueID int64  `validate:"gte=0"`
	Season   int64  `validate:"omitempty,gte=1900,lte=2100"`
}

type injuriesByIDsRequest struct {
	IDs string `validate:"required,idlist"`
}

type peopleRequest struct {
	Players string `validate:"omitempty,idlist"`
	Coaches string `validate:"omitempty,idlist"`
}

type coachesRequest struct {
	TeamID int64  `validate:"gte=0"`
	Search string `validate:"omitempty,min=3,max=64"`
}

func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leagues")
	defer span.End()

	writeEnvelope(ctx, w, h.referenceService.Leagues(ctx))
}

func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Seasons")
	defer span.End()

	writeEnvelope(ctx, w, h.referenceService.Seasons(ctx))
}

func (h *Handler) TeamCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamCountries")
	defer span.End()

	writeEnvelope(ctx, w, h.referenceService.TeamCountries(ctx))
}

// perLeague serves the routes keyed by a single {leagueID}.
func (h *Handler) perLeague(w http.ResponseWriter, r *http.Request, spanName string, fetch func(ctx context.Context, leagueID int64) football.Envelope) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	id, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := leagueRequest{LeagueID: id}
	h.respond(ctx, w, req, func() football.Envelope {
		return fetch(ctx, req.LeagueID)
	})
}

func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.Standings", h.referenceService.Standings)
}

func (h *Handler) TopScorers(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.TopScorers", h.referenceService.TopScorers)
}

func (h *Handler) TopAssists(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.TopAssists", h.referenceService.TopAssists)
}

func (h *Handler) TopYellowCards(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.TopYellowCards", h.referenceService.TopYellowCards)
}

func (h *Handler) TopRedCards(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.TopRedCards", h.referenceService.TopRedCards)
}

func (h *Handler) InjuriesByLeague(w http.ResponseWriter, r *http.Request) {
	h.perLeague(w, r, "httpapi.Handler.InjuriesByLeague", func(ctx context.Context, leagueID int64) football.Envelope {
		return h.referenceService.Injuries(ctx, usecase.InjuriesFilter{LeagueID: leagueID})
	})
}

// perLeaguePair serves /{subject}/{leagueID} routes such as team and player
// statistics.
func (h *Handler) perLeaguePair(w http.ResponseWriter, r *http.Request, spanName, subject string, fetch func(ctx context.Context, subjectID, leagueID int64) football.Envelope) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	subjectID, err := pathInt64(r, subject)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := pairRequest{SubjectID: subjectID, LeagueID: leagueID}
	h.respond(ctx, w, req, func() football.Envelope {
		return fetch(ctx, req.SubjectID, req.LeagueID)
	})
}

func (h *Handler) TeamStatistics(w http.ResponseWriter, r *http.Request) {
	h.perLeaguePair(w, r, "httpapi.Handler.TeamStatistics", "teamID", h.referenceService.TeamStatistics)
}

func (h *Handler) PlayerStatistics(w http.ResponseWriter, r *http.Request) {
	h.perLeaguePair(w, r, "httpapi.Handler.PlayerStatistics", "playerID", h.referenceService.PlayerStatistics)
}

func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Teams")
	defer span.End()

	leagueID, err := queryInt64(r, "league_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt64(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := teamsRequest{
		Country:  strings.TrimSpace(r.URL.Query().Get("country")),
		LeagueID: leagueID,
		Season:   season,
	}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Teams(ctx, usecase.TeamsFilter{
			Country:  req.Country,
			LeagueID: req.LeagueID,
			Season:   int(req.Season),
		})
	})
}

func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Players")
	defer span.End()

	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt64(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := teamSeasonRequest{TeamID: teamID, Season: season}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Players(ctx, req.TeamID, int(req.Season))
	})
}

func (h *Handler) Squad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Squad")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := pathInt64(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := teamSeasonRequest{TeamID: teamID, Season: season}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Squad(ctx, req.TeamID, int(req.Season))
	})
}

func (h *Handler) InjuriesByFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InjuriesByFixtures")
	defer span.End()

	req := injuriesByIDsRequest{IDs: strings.TrimSpace(r.URL.Query().Get("ids"))}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Injuries(ctx, usecase.InjuriesFilter{FixtureIDs: normalizeIDList(req.IDs)})
	})
}

func (h *Handler) Sidelined(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Sidelined")
	defer span.End()

	req := peopleQuery(r)
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Sidelined(ctx, req.filter())
	})
}

func (h *Handler) Trophies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Trophies")
	defer span.End()

	req := peopleQuery(r)
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Trophies(ctx, req.filter())
	})
}

func peopleQuery(r *http.Request) peopleRequest {
	q := r.URL.Query()
	return peopleRequest{
		Players: strings.TrimSpace(q.Get("players")),
		Coaches: strings.TrimSpace(q.Get("coachs")),
	}
}

func (p peopleRequest) filter() usecase.PeopleFilter {
	return usecase.PeopleFilter{
		Players: normalizeIDList(p.Players),
		Coaches: normalizeIDList(p.Coaches),
	}
}

func (h *Handler) Transfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Transfers")
	defer span.End()

	id, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := playerRequest{PlayerID: id}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Transfers(ctx, req.PlayerID)
	})
}

func (h *Handler) Coaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Coaches")
	defer span.End()

	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := coachesRequest{TeamID: teamID, Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	h.respond(ctx, w, req, func() football.Envelope {
		return h.referenceService.Coaches(ctx, usecase.CoachesFilter{TeamID: req.TeamID, Search: req.Search})
	})
}
