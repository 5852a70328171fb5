package scores

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/idilsaglam/bootcamp/internal/logging"
)

// TeamScores maps a team name to its goal count.
type TeamScores map[string]int

// Teams lists the clubs taking part, in table order.
var Teams = []string{"Real Madrid", "Barcelona", "Bayern Munich", "Paris Saint German"}

const (
	DefaultEvents   = 5
	DefaultInterval = 1500 * time.Millisecond
)

// FootballScores is the match subject. Observers receive the live score map,
// not a copy.
type FootballScores struct {
	mu        sync.Mutex
	observers []Observer[TeamScores]
	scores    TeamScores

	log      *slog.Logger
	events   int
	interval time.Duration
	pick     func(n int) int
}

var _ Subject[TeamScores] = (*FootballScores)(nil)

type Option func(*FootballScores)

func WithLogger(log *slog.Logger) Option {
	return func(s *FootballScores) { s.log = log }
}

func WithEvents(n int) Option {
	return func(s *FootballScores) { s.events = n }
}

func WithInterval(d time.Duration) Option {
	return func(s *FootballScores) { s.interval = d }
}

// WithPicker replaces the random team selection. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *FootballScores) { s.pick = pick }
}

func NewFootballScores(opts ...Option) *FootballScores {
	s := &FootballScores{
		scores:   make(TeamScores, len(Teams)),
		log:      logging.Discard(),
		events:   DefaultEvents,
		interval: DefaultInterval,
		pick:     rand.IntN,
	}
	for _, t := range Teams {
		s.scores[t] = 0
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *FootballScores) Subscribe(o Observer[TeamScores]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.observers, o) {
		s.log.Warn("observer already subscribed")
		return
	}
	s.observers = append(s.observers, o)
	s.log.Info("observer subscribed", "observers", len(s.observers))
}

func (s *FootballScores) Unsubscribe(o Observer[TeamScores]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.observers, o)
	if i < 0 {
		s.log.Warn("observer not found")
		return
	}
	s.observers = slices.Delete(s.observers, i, i+1)
	s.log.Info("observer unsubscribed", "observers", len(s.observers))
}

// Notify calls every observer in subscription order. Observers may
// subscribe or unsubscribe from inside Update; the change applies from the
// next notification.
func (s *FootballScores) Notify() {
	s.mu.Lock()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.log.Debug("notifying observers", "observers", len(observers))
	for _, o := range observers {
		o.Update(s.scores)
	}
}

// Score returns the current goal count for team.
func (s *FootballScores) Score(team string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.scores[team]
	return n, ok
}

// Play runs the match: each event waits for the interval, gives a goal to a
// random team and notifies observers. It stops early when ctx is done.
func (s *FootballScores) Play(ctx context.Context) error {
	s.log.Info("match started", "events", s.events)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for i := 0; i < s.events; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			timer.Reset(s.interval)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		team := Teams[s.pick(len(Teams))]
		s.mu.Lock()
		s.scores[team]++
		goals := s.scores[team]
		s.mu.Unlock()

		s.log.Info("goal", "team", team, "score", goals)
		s.Notify()
	}

	s.log.Info("match ended")
	return nil
}
