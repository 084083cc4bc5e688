package league

import (
	"math"
	"sort"

	"github.com/alienigenasfc/pelada-system/models"
)

// NameResolver maps a player id to a display name. Tournament-level
// functions receive the current roster's resolver; all-time functions
// prefer each history entry's snapshot and use the resolver as
// fallback.
type NameResolver func(playerID string) string

// TopScorers groups the goals of a tournament's finished matches by
// scorer, sorted by goal count descending. Players tied on goals keep
// first-goal order.
func TopScorers(t *models.Tournament, nameOf NameResolver) []models.ScorerStat {
	if t == nil {
		return nil
	}
	acc := newScorerAccumulator()
	for _, m := range t.FinishedMatches() {
		for _, g := range m.Goals {
			acc.addGoal(g, nameOf)
		}
	}
	return acc.sorted()
}

// GoalkeeperStats credits both keepers of every finished match with a
// played game, the opposing score as goals against, a W/D/L from their
// own side's result and a clean sheet when the opponent did not score.
// Sorted by average goals against ascending; a keeper with no matches
// ranks last; ties broken by clean sheets descending.
func GoalkeeperStats(t *models.Tournament, nameOf NameResolver) []models.GoalkeeperStat {
	if t == nil {
		return nil
	}
	acc := newKeeperAccumulator()
	for _, m := range t.FinishedMatches() {
		acc.addMatch(m, nameOf)
	}
	return acc.sorted()
}

// finishedHistory filters history down to entries with a recorded
// champion; abandoned snapshots carry no titles or all-time credit.
func finishedHistory(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Status == models.TournamentStatusFinished && h.Champion != nil {
			out = append(out, h)
		}
	}
	return out
}

// AllTimeChampions credits every roster member of each archived
// champion team with one title, resolving names through the entry's
// player snapshot so deleted players keep their name.
func AllTimeChampions(history []models.HistoryEntry, nameOf NameResolver) []models.ChampionStat {
	order := make([]string, 0)
	byID := make(map[string]*models.ChampionStat)

	for _, h := range finishedHistory(history) {
		entry := h
		for _, pid := range h.Champion.PlayerIDs {
			s, ok := byID[pid]
			if !ok {
				s = &models.ChampionStat{
					PlayerID: pid,
					Name:     entry.ResolvePlayerName(pid, nameOf),
				}
				byID[pid] = s
				order = append(order, pid)
			}
			s.Titles++
			s.Teams = append(s.Teams, h.Champion.TeamName)
		}
	}

	out := make([]models.ChampionStat, 0, len(order))
	for _, pid := range order {
		out = append(out, *byID[pid])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Titles > out[j].Titles })
	return out
}

// AllTimeTopScorers sums goals over all finished history entries plus
// the still-open current tournament's finished matches. Tournaments is
// the number of tournaments the player scored in at least once.
func AllTimeTopScorers(history []models.HistoryEntry, current *models.Tournament, nameOf NameResolver) []models.ScorerStat {
	acc := newScorerAccumulator()

	for _, h := range finishedHistory(history) {
		entry := h
		resolve := func(pid string) string { return entry.ResolvePlayerName(pid, nameOf) }
		seen := make(map[string]bool)
		for _, m := range h.FinishedMatches() {
			for _, g := range m.Goals {
				acc.addGoal(g, resolve)
				seen[g.PlayerID] = true
			}
		}
		acc.creditTournament(seen)
	}

	if current != nil {
		seen := make(map[string]bool)
		for _, m := range current.FinishedMatches() {
			for _, g := range m.Goals {
				acc.addGoal(g, nameOf)
				seen[g.PlayerID] = true
			}
		}
		acc.creditTournament(seen)
	}

	return acc.sorted()
}

// AllTimeGoalkeeperStats is GoalkeeperStats summed across history and
// the live tournament.
func AllTimeGoalkeeperStats(history []models.HistoryEntry, current *models.Tournament, nameOf NameResolver) []models.GoalkeeperStat {
	acc := newKeeperAccumulator()

	for _, h := range finishedHistory(history) {
		entry := h
		resolve := func(pid string) string { return entry.ResolvePlayerName(pid, nameOf) }
		for _, m := range h.FinishedMatches() {
			acc.addMatch(m, resolve)
		}
	}
	if current != nil {
		for _, m := range current.FinishedMatches() {
			acc.addMatch(m, nameOf)
		}
	}
	return acc.sorted()
}

// AllTimeGamesPlayed credits one game per finished match to every
// roster member of either side, and one tournament per tournament with
// at least one such match. Sorted by games, then tournaments,
// descending.
func AllTimeGamesPlayed(history []models.HistoryEntry, current *models.Tournament, nameOf NameResolver) []models.AppearanceStat {
	order := make([]string, 0)
	byID := make(map[string]*models.AppearanceStat)

	credit := func(t *models.Tournament, resolve NameResolver) {
		games := make(map[string]int)
		gameOrder := make([]string, 0)
		for _, m := range t.FinishedMatches() {
			for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
				team := t.FindTeam(teamID)
				if team == nil {
					continue
				}
				for _, pid := range team.Players {
					if _, ok := games[pid]; !ok {
						gameOrder = append(gameOrder, pid)
					}
					games[pid]++
				}
			}
		}
		for _, pid := range gameOrder {
			s, ok := byID[pid]
			if !ok {
				s = &models.AppearanceStat{PlayerID: pid, Name: resolve(pid)}
				byID[pid] = s
				order = append(order, pid)
			}
			s.GamesPlayed += games[pid]
			s.TournamentsPlayed++
		}
	}

	for _, h := range finishedHistory(history) {
		entry := h
		credit(&entry.Tournament, func(pid string) string { return entry.ResolvePlayerName(pid, nameOf) })
	}
	if current != nil {
		credit(current, nameOf)
	}

	out := make([]models.AppearanceStat, 0, len(order))
	for _, pid := range order {
		out = append(out, *byID[pid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GamesPlayed != out[j].GamesPlayed {
			return out[i].GamesPlayed > out[j].GamesPlayed
		}
		return out[i].TournamentsPlayed > out[j].TournamentsPlayed
	})
	return out
}

// Both accumulators preserve first-seen order so equal sort keys stay
// deterministic across runs.

type scorerAccumulator struct {
	order []string
	byID  map[string]*models.ScorerStat
	teams map[string]map[string]bool
}

func newScorerAccumulator() *scorerAccumulator {
	return &scorerAccumulator{
		byID:  make(map[string]*models.ScorerStat),
		teams: make(map[string]map[string]bool),
	}
}

func (a *scorerAccumulator) addGoal(g models.Goal, nameOf NameResolver) {
	s, ok := a.byID[g.PlayerID]
	if !ok {
		name := "???"
		if nameOf != nil {
			name = nameOf(g.PlayerID)
		}
		s = &models.ScorerStat{PlayerID: g.PlayerID, Name: name}
		a.byID[g.PlayerID] = s
		a.teams[g.PlayerID] = make(map[string]bool)
		a.order = append(a.order, g.PlayerID)
	}
	s.Goals++
	if !a.teams[g.PlayerID][g.TeamID] {
		a.teams[g.PlayerID][g.TeamID] = true
		s.TeamIDs = append(s.TeamIDs, g.TeamID)
	}
}

func (a *scorerAccumulator) creditTournament(scored map[string]bool) {
	for pid := range scored {
		if s, ok := a.byID[pid]; ok {
			s.Tournaments++
		}
	}
}

func (a *scorerAccumulator) sorted() []models.ScorerStat {
	out := make([]models.ScorerStat, 0, len(a.order))
	for _, pid := range a.order {
		out = append(out, *a.byID[pid])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Goals > out[j].Goals })
	return out
}

type keeperAccumulator struct {
	order []string
	byID  map[string]*models.GoalkeeperStat
}

func newKeeperAccumulator() *keeperAccumulator {
	return &keeperAccumulator{byID: make(map[string]*models.GoalkeeperStat)}
}

func (a *keeperAccumulator) addMatch(m models.Match, nameOf NameResolver) {
	a.addSide(m.HomeGoalkeeper, m.AwayScore, m.HomeScore, nameOf)
	a.addSide(m.AwayGoalkeeper, m.HomeScore, m.AwayScore, nameOf)
}

func (a *keeperAccumulator) addSide(keeperID string, goalsAgainst, goalsFor int, nameOf NameResolver) {
	if keeperID == "" {
		return
	}
	s, ok := a.byID[keeperID]
	if !ok {
		name := "???"
		if nameOf != nil {
			name = nameOf(keeperID)
		}
		s = &models.GoalkeeperStat{PlayerID: keeperID, Name: name}
		a.byID[keeperID] = s
		a.order = append(a.order, keeperID)
	}
	s.Matches++
	s.GoalsAgainst += goalsAgainst
	if goalsAgainst == 0 {
		s.CleanSheets++
	}
	switch {
	case goalsFor > goalsAgainst:
		s.Wins++
	case goalsFor < goalsAgainst:
		s.Losses++
	default:
		s.Draws++
	}
}

func (a *keeperAccumulator) sorted() []models.GoalkeeperStat {
	out := make([]models.GoalkeeperStat, 0, len(a.order))
	for _, pid := range a.order {
		out = append(out, *a.byID[pid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		avgI, okI := out[i].AverageGoalsAgainst()
		if !okI {
			avgI = math.Inf(1)
		}
		avgJ, okJ := out[j].AverageGoalsAgainst()
		if !okJ {
			avgJ = math.Inf(1)
		}
		if avgI != avgJ {
			return avgI < avgJ
		}
		return out[i].CleanSheets > out[j].CleanSheets
	})
	return out
}
