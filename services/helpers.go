package services

import (
	"context"
	"time"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
)

// Broadcaster is the optional push channel; *league.Hub satisfies it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event league.Event)
}

// persistRoster captures the roster under the lock already held by the
// caller and enqueues the whole-document write.
func persistRoster(p Persister, repo repositories.RosterRepository, st *StateData) {
	snapshot := &models.Roster{Players: append([]models.Player(nil), st.Roster.Players...)}
	p.Enqueue("save_roster", func(ctx context.Context) error {
		return repo.Save(ctx, snapshot)
	})
}

// persistTournament enqueues the whole-snapshot write of the active
// tournament (or the slot clear when nil).
func persistTournament(p Persister, repo repositories.TournamentRepository, st *StateData) {
	if st.Tournament == nil {
		p.Enqueue("clear_tournament", func(ctx context.Context) error {
			return repo.Clear(ctx)
		})
		return
	}
	snapshot := st.Tournament.Clone()
	p.Enqueue("save_tournament", func(ctx context.Context) error {
		return repo.Save(ctx, snapshot)
	})
}

// buildHistoryEntry snapshots the tournament for the archive. Champion
// is computed only for finished tournaments; the player-name snapshot
// covers the whole roster plus any player referenced by a team but
// already deleted.
func buildHistoryEntry(st *StateData, status models.TournamentStatus, now time.Time) *models.HistoryEntry {
	t := st.Tournament.Clone()
	t.Status = status

	snapshot := make(map[string]string, len(st.Roster.Players))
	for _, p := range st.Roster.Players {
		snapshot[p.ID] = p.Name
	}
	for _, team := range t.Teams {
		for _, pid := range team.Players {
			if _, ok := snapshot[pid]; !ok {
				snapshot[pid] = st.Roster.PlayerName(pid)
			}
		}
	}

	entry := &models.HistoryEntry{
		Tournament:     *t,
		FinishedAt:     now,
		PlayerSnapshot: snapshot,
	}
	if status == models.TournamentStatusFinished {
		entry.Champion = league.Champion(t)
	}
	return entry
}

// appendHistory deduplicates by tournament id and keeps the cache
// ordered newest first, mirroring the store's sort.
func appendHistory(st *StateData, entry *models.HistoryEntry) {
	kept := make([]models.HistoryEntry, 0, len(st.History)+1)
	kept = append(kept, *entry)
	for _, h := range st.History {
		if h.ID != entry.ID {
			kept = append(kept, h)
		}
	}
	st.History = kept
}
