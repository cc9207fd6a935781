package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/cache"
)

// absentKeyPart stands in for an unset optional filter inside cache keys.
const absentKeyPart = "None"

// ReferenceService serves slow-changing data from the reference tier.
// Operations without an explicit season use the current calendar year.
type ReferenceService struct {
	fetcher Fetcher
	now     func() time.Time
}

func NewReferenceService(fetcher Fetcher, now func() time.Time) *ReferenceService {
	if now == nil {
		now = time.Now
	}
	return &ReferenceService{fetcher: fetcher, now: now}
}

// TeamsFilter narrows /teams. Zero values are absent.
type TeamsFilter struct {
	Country  string
	LeagueID int64
	Season   int
}

// InjuriesFilter narrows /injuries. FixtureIDs is the upstream dash
// separated id list.
type InjuriesFilter struct {
	LeagueID   int64
	FixtureIDs string
}

// PeopleFilter narrows /sidelined and /trophies.
type PeopleFilter struct {
	Players string
	Coaches string
}

type CoachesFilter struct {
	TeamID int64
	Search string
}

func (s *ReferenceService) Leagues(ctx context.Context) football.Envelope {
	return s.fetch(ctx, "leagues", nil, "leagues")
}

func (s *ReferenceService) Seasons(ctx context.Context) football.Envelope {
	return s.fetch(ctx, "leagues/seasons", nil, "seasons")
}

func (s *ReferenceService) Standings(ctx context.Context, leagueID int64) football.Envelope {
	league, season := itoa(leagueID), s.season()
	return s.fetch(ctx, "standings",
		football.Query{"league": league, "season": season},
		keyOf("standings", league, season),
	)
}

func (s *ReferenceService) Teams(ctx context.Context, filter TeamsFilter) football.Envelope {
	query := football.Query{}
	country := strings.TrimSpace(filter.Country)
	if country != "" {
		query["country"] = country
	}
	league := optionalInt(filter.LeagueID)
	if league != "" {
		query["league"] = league
	}
	season := optionalInt(int64(filter.Season))
	if season != "" {
		query["season"] = season
	}
	return s.fetch(ctx, "teams", query, keyOf("teams", keyPart(country), keyPart(league), keyPart(season)))
}

func (s *ReferenceService) TeamStatistics(ctx context.Context, teamID, leagueID int64) football.Envelope {
	team, league, season := itoa(teamID), itoa(leagueID), s.season()
	return s.fetch(ctx, "teams/statistics",
		football.Query{"team": team, "league": league, "season": season},
		keyOf("team_stats", team, league, season),
	)
}

func (s *ReferenceService) TeamCountries(ctx context.Context) football.Envelope {
	return s.fetch(ctx, "teams/countries", nil, "team_countries")
}

func (s *ReferenceService) Players(ctx context.Context, teamID int64, season int) football.Envelope {
	team, year := itoa(teamID), strconv.Itoa(season)
	return s.fetch(ctx, "players",
		football.Query{"team": team, "season": year},
		keyOf("players", team, year),
	)
}

func (s *ReferenceService) PlayerStatistics(ctx context.Context, playerID, leagueID int64) football.Envelope {
	player, league, season := itoa(playerID), itoa(leagueID), s.season()
	return s.fetch(ctx, "players/statistics",
		football.Query{"player": player, "league": league, "season": season},
		keyOf("player_stats", player, league, season),
	)
}

func (s *ReferenceService) TopScorers(ctx context.Context, leagueID int64) football.Envelope {
	return s.leaderboard(ctx, "players/topscorers", "topscorers", leagueID)
}

func (s *ReferenceService) TopAssists(ctx context.Context, leagueID int64) football.Envelope {
	return s.leaderboard(ctx, "players/topassists", "topassists", leagueID)
}

func (s *ReferenceService) TopYellowCards(ctx context.Context, leagueID int64) football.Envelope {
	return s.leaderboard(ctx, "players/topyellowcards", "topyellow", leagueID)
}

func (s *ReferenceService) TopRedCards(ctx context.Context, leagueID int64) football.Envelope {
	return s.leaderboard(ctx, "players/topredcards", "topred", leagueID)
}

func (s *ReferenceService) leaderboard(ctx context.Context, path, prefix string, leagueID int64) football.Envelope {
	league, season := itoa(leagueID), s.season()
	return s.fetch(ctx, path,
		football.Query{"league": league, "season": season},
		keyOf(prefix, league, season),
	)
}

func (s *ReferenceService) Squad(ctx context.Context, teamID int64, season int) football.Envelope {
	team, year := itoa(teamID), strconv.Itoa(season)
	return s.fetch(ctx, "players/squads",
		football.Query{"team": team, "season": year},
		keyOf("squad", team, year),
	)
}

func (s *ReferenceService) Injuries(ctx context.Context, filter InjuriesFilter) football.Envelope {
	query := football.Query{}
	league := optionalInt(filter.LeagueID)
	if league != "" {
		query["league"] = league
	}
	ids := strings.TrimSpace(filter.FixtureIDs)
	if ids != "" {
		query["fixture"] = ids
	}
	return s.fetch(ctx, "injuries", query, keyOf("injuries", keyPart(league), keyPart(ids)))
}

func (s *ReferenceService) Sidelined(ctx context.Context, filter PeopleFilter) football.Envelope {
	return s.people(ctx, "sidelined", filter)
}

func (s *ReferenceService) Trophies(ctx context.Context, filter PeopleFilter) football.Envelope {
	return s.people(ctx, "trophies", filter)
}

func (s *ReferenceService) people(ctx context.Context, path string, filter PeopleFilter) football.Envelope {
	query := football.Query{}
	players := strings.TrimSpace(filter.Players)
	if players != "" {
		query["player"] = players
	}
	coaches := strings.TrimSpace(filter.Coaches)
	if coaches != "" {
		query["coach"] = coaches
	}
	return s.fetch(ctx, path, query, keyOf(path, keyPart(players), keyPart(coaches)))
}

func (s *ReferenceService) Transfers(ctx context.Context, playerID int64) football.Envelope {
	player := itoa(playerID)
	return s.fetch(ctx, "transfers", football.Query{"player": player}, keyOf("transfers", player))
}

func (s *ReferenceService) Coaches(ctx context.Context, filter CoachesFilter) football.Envelope {
	query := football.Query{}
	team := optionalInt(filter.TeamID)
	if team != "" {
		query["team"] = team
	}
	search := strings.TrimSpace(filter.Search)
	if search != "" {
		query["search"] = search
	}
	return s.fetch(ctx, "coachs", query, keyOf("coachs", keyPart(team), keyPart(search)))
}

func (s *ReferenceService) fetch(ctx context.Context, path string, query football.Query, key string) football.Envelope {
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  path,
		Query: query,
		Tier:  cache.TierReference,
		Key:   key,
	}).Envelope
}

func (s *ReferenceService) season() string {
	return strconv.Itoa(s.now().Year())
}

func keyOf(prefix string, parts ...string) string {
	return prefix + "_" + strings.Join(parts, "_")
}

func keyPart(v string) string {
	if v == "" {
		return absentKeyPart
	}
	return v
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func optionalInt(v int64) string {
	if v <= 0 {
		return ""
	}
	return itoa(v)
}
