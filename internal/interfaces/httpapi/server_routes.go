package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /fixtures", handler.FixturesByDate)
	mux.HandleFunc("GET /fixtures/today", handler.FixturesToday)
	mux.HandleFunc("GET /fixtures/yesterday", handler.FixturesYesterday)
	mux.HandleFunc("GET /fixtures/tomorrow", handler.FixturesTomorrow)
	mux.HandleFunc("GET /fixtures/events/{fixtureID}", handler.Events)
	mux.HandleFunc("GET /fixtures/lineups/{fixtureID}", handler.Lineups)
	mux.HandleFunc("GET /fixtures/statistics/{fixtureID}", handler.Statistics)
	mux.HandleFunc("GET /fixtures/headtohead/{team1ID}/{team2ID}", handler.HeadToHead)
	mux.HandleFunc("GET /live", handler.LiveFixtures)
	mux.HandleFunc("GET /predictions/{fixtureID}", handler.Predictions)
	mux.HandleFunc("GET /odds/{fixtureID}", handler.Odds)
	mux.HandleFunc("GET /odds/live", handler.LiveOdds)
	mux.HandleFunc("GET /odds/live/bets", handler.LiveOddsBets)
}

func registerReferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /leagues", handler.Leagues)
	mux.HandleFunc("GET /leagues/seasons", handler.Seasons)
	mux.HandleFunc("GET /standings/{leagueID}", handler.Standings)
	mux.HandleFunc("GET /teams", handler.Teams)
	mux.HandleFunc("GET /teams/statistics/{teamID}/{leagueID}", handler.TeamStatistics)
	mux.HandleFunc("GET /teams/countries", handler.TeamCountries)
	mux.HandleFunc("GET /players", handler.Players)
	mux.HandleFunc("GET /players/statistics/{playerID}/{leagueID}", handler.PlayerStatistics)
	mux.HandleFunc("GET /players/topscorers/{leagueID}", handler.TopScorers)
	mux.HandleFunc("GET /players/topassists/{leagueID}", handler.TopAssists)
	mux.HandleFunc("GET /players/topyellowcards/{leagueID}", handler.TopYellowCards)
	mux.HandleFunc("GET /players/topredcards/{leagueID}", handler.TopRedCards)
	mux.HandleFunc("GET /players/squads/{teamID}/{season}", handler.Squad)
	mux.HandleFunc("GET /injuries", handler.InjuriesByFixtures)
	mux.HandleFunc("GET /injuries/{leagueID}", handler.InjuriesByLeague)
	mux.HandleFunc("GET /sidelined", handler.Sidelined)
	mux.HandleFunc("GET /transfers/{playerID}", handler.Transfers)
	mux.HandleFunc("GET /coachs", handler.Coaches)
	mux.HandleFunc("GET /trophies", handler.Trophies)
}
