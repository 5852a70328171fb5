package scores

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/idilsaglam/bootcamp/internal/ui"
)

// Scoreboard prints the whole table on every update.
type Scoreboard struct {
	w io.Writer
}

func NewScoreboard(w io.Writer) *Scoreboard { return &Scoreboard{w: w} }

func (b *Scoreboard) Update(scores TeamScores) {
	fmt.Fprintln(b.w, ui.C(ui.Current().Title, "--- LIVE TV SCOREBOARD ---"))
	for _, team := range tableOrder(scores) {
		fmt.Fprintf(b.w, "%-20s : %d\n", team, scores[team])
	}
	fmt.Fprintln(b.w, "---------------------------")
}

// tableOrder lists known teams first, then any others alphabetically.
func tableOrder(scores TeamScores) []string {
	order := make([]string, 0, len(scores))
	for _, t := range Teams {
		if _, ok := scores[t]; ok {
			order = append(order, t)
		}
	}
	var extra []string
	for t := range maps.Keys(scores) {
		if !slices.Contains(Teams, t) {
			extra = append(extra, t)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

// Fan only cares about one team.
type Fan struct {
	Team string
	w    io.Writer
}

func NewFan(team string, w io.Writer) *Fan { return &Fan{Team: team, w: w} }

func (f *Fan) Update(scores TeamScores) {
	n, ok := scores[f.Team]
	if !ok {
		return
	}
	fmt.Fprintf(f.w, "[Fan of %s]: \"I see the score is now %d for my team!\"\n", f.Team, n)
}

// ChannelObserver forwards copies of the table over a buffered channel.
// Updates are dropped while the buffer is full so a slow reader never stalls
// the match.
type ChannelObserver struct {
	C       chan TeamScores
	dropped atomic.Int64
}

func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{C: make(chan TeamScores, buffer)}
}

func (c *ChannelObserver) Update(scores TeamScores) {
	select {
	case c.C <- maps.Clone(scores):
	default:
		c.dropped.Add(1)
	}
}

// Dropped reports how many updates did not fit in the buffer.
// It is safe to call while the match is being played.
func (c *ChannelObserver) Dropped() int { return int(c.dropped.Load()) }
