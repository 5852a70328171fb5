package scores

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bootcamp/internal/ui"
)

func TestScoreboardStableOrder(t *testing.T) {
	ui.SetColorForcing(false, true)
	defer ui.SetColorForcing(false, false)

	var buf bytes.Buffer
	NewScoreboard(&buf).Update(TeamScores{
		"Paris Saint German": 1, "Zenit": 4, "Barcelona": 2, "Ajax": 0,
		"Real Madrid": 3, "Bayern Munich": 0,
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "--- LIVE TV SCOREBOARD ---", lines[0])
	assert.Equal(t, "Real Madrid          : 3", lines[1])
	assert.Equal(t, "Barcelona            : 2", lines[2])
	assert.Equal(t, "Bayern Munich        : 0", lines[3])
	assert.Equal(t, "Paris Saint German   : 1", lines[4])
	assert.Equal(t, "Ajax                 : 0", lines[5])
	assert.Equal(t, "Zenit                : 4", lines[6])
}

func TestFan(t *testing.T) {
	var buf bytes.Buffer
	fan := NewFan("Barcelona", &buf)

	fan.Update(TeamScores{"Barcelona": 2})
	assert.Equal(t, "[Fan of Barcelona]: \"I see the score is now 2 for my team!\"\n", buf.String())

	buf.Reset()
	fan.Update(TeamScores{"Real Madrid": 1})
	assert.Empty(t, buf.String(), "fan stays quiet when the team is absent")
}

func TestChannelObserverCopiesAndDrops(t *testing.T) {
	c := NewChannelObserver(1)
	live := TeamScores{"Barcelona": 1}

	c.Update(live)
	c.Update(live)
	live["Barcelona"] = 5

	got := <-c.C
	assert.Equal(t, 1, got["Barcelona"])
	assert.Equal(t, 1, c.Dropped())
}

func TestChannelObserverDroppedWhilePlaying(t *testing.T) {
	const events = 200
	c := NewChannelObserver(0)
	match := NewFootballScores(WithEvents(events), WithInterval(0))
	match.Subscribe(c)

	done := make(chan error, 1)
	go func() { done <- match.Play(context.Background()) }()

	for last := 0; ; {
		n := c.Dropped()
		assert.GreaterOrEqual(t, n, last, "drop count never goes back")
		last = n
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, events, c.Dropped())
			return
		default:
		}
	}
}
