package league

import (
	"errors"
	"fmt"

	"github.com/alienigenasfc/pelada-system/models"
)

var (
	ErrWrongTeamCount    = errors.New("winner-stays schedule requires exactly 3 teams")
	ErrSameTeamTwice     = errors.New("round 1 needs two distinct teams")
	ErrUnknownTeam       = errors.New("team does not belong to this tournament")
	ErrStayNotInRoundOne = errors.New("staying team did not play round 1")
)

// Rotation labels the three teams after round 1 has been resolved. The
// rest cycle is [Resting, Leaving, Stay]: for round r (1-indexed) the
// team resting is cycle[(r-1) mod 3].
type Rotation struct {
	Stay    string
	Leaving string
	Resting string
}

// Cycle returns the rest cycle in rotation order.
func (r Rotation) Cycle() [3]string {
	return [3]string{r.Resting, r.Leaving, r.Stay}
}

// RestingInRound returns the team id resting in the given 1-indexed
// round.
func (r Rotation) RestingInRound(round int) string {
	c := r.Cycle()
	return c[(round-1)%3]
}

// WinnerStaysGenerator produces the fixed 9-round schedule for three
// teams where the round-1 winner (or the chosen team on a draw) stays
// on the pitch.
type WinnerStaysGenerator struct{}

func NewWinnerStaysGenerator() *WinnerStaysGenerator {
	return &WinnerStaysGenerator{}
}

func (g *WinnerStaysGenerator) GetName() string {
	return "WinnerStays"
}

// RoundOne builds the single opening match from the manual team
// selection. No other rounds exist until the result is known.
func (g *WinnerStaysGenerator) RoundOne(teams []models.Team, homeID, awayID string) (models.Match, error) {
	if len(teams) != 3 {
		return models.Match{}, ErrWrongTeamCount
	}
	if homeID == awayID {
		return models.Match{}, ErrSameTeamTwice
	}
	if !teamKnown(teams, homeID) || !teamKnown(teams, awayID) {
		return models.Match{}, ErrUnknownTeam
	}
	return models.Match{
		Round:      1,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Goals:      []models.Goal{},
		Status:     models.MatchStatusInProgress,
	}, nil
}

// Generate resolves round 1 and lays out all nine rounds.
//
// The recorded round-1 result is preserved verbatim in slot 0; rounds
// 2..9 are created pending with zero scores, and round 2 is started
// immediately. The resting team of round 1 is derived as the id absent
// from the opening match. Home/away inside a round carries no
// competitive meaning: the two playing teams keep the order they have
// on the tournament's team list, first one home.
func (g *WinnerStaysGenerator) Generate(teams []models.Team, roundOne models.Match, stayID string) ([]models.Match, Rotation, error) {
	if len(teams) != 3 {
		return nil, Rotation{}, ErrWrongTeamCount
	}
	if !roundOne.HasTeam(stayID) {
		return nil, Rotation{}, ErrStayNotInRoundOne
	}

	leaveID := roundOne.HomeTeamID
	if stayID == leaveID {
		leaveID = roundOne.AwayTeamID
	}

	restingID := ""
	for _, team := range teams {
		if !roundOne.HasTeam(team.ID) {
			restingID = team.ID
			break
		}
	}
	if restingID == "" {
		return nil, Rotation{}, fmt.Errorf("%w: no resting team in round 1", ErrWrongTeamCount)
	}

	rot := Rotation{Stay: stayID, Leaving: leaveID, Resting: restingID}
	cycle := rot.Cycle()

	matches := make([]models.Match, 0, models.TotalRounds)
	for round := 0; round < models.TotalRounds; round++ {
		resting := cycle[round%3]
		playing := make([]string, 0, 2)
		for _, team := range teams {
			if team.ID != resting {
				playing = append(playing, team.ID)
			}
		}
		matches = append(matches, models.Match{
			Round:      round + 1,
			HomeTeamID: playing[0],
			AwayTeamID: playing[1],
			Goals:      []models.Goal{},
			Status:     models.MatchStatusPending,
		})
	}

	// Slot 0 keeps the actual opening match: its scores, goal log,
	// goalkeepers and participants survive regeneration.
	roundOne.Round = 1
	roundOne.Status = models.MatchStatusFinished
	matches[0] = roundOne
	matches[1].Status = models.MatchStatusInProgress

	return matches, rot, nil
}

func teamKnown(teams []models.Team, id string) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}
