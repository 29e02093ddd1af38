package loop

import (
	"math"
	"sort"
	"time"

	"github.com/tomz197/vocabshooter/internal/shooter"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// Session aggregates round results from the first stage to the summary.
type Session struct {
	Pairs     []*vocab.Pair
	Correct   int
	Incorrect int
	Streak    int // Carried into the next round
	MaxStreak int
	Rounds    int // Completed rounds

	start time.Time
	now   func() time.Time
}

// NewSession starts a session over pairs. now defaults to time.Now.
func NewSession(pairs []*vocab.Pair, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		Pairs: pairs,
		start: now(),
		now:   now,
	}
}

// Record adds one completed round. Every missed item counts one error on
// its pair.
func (s *Session) Record(missed []vocab.QuizItem, stats shooter.Stats) {
	s.Rounds++
	s.Correct += stats.Correct
	s.Incorrect += stats.Incorrect
	s.Streak = stats.Streak
	if stats.MaxStreak > s.MaxStreak {
		s.MaxStreak = stats.MaxStreak
	}
	for _, item := range missed {
		if item.Pair != nil {
			item.Pair.ErrorCount++
		}
	}
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// WPM returns correct answers per minute since the session started.
func (s *Session) WPM() int {
	minutes := s.Elapsed().Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / minutes))
}

// Accuracy returns the share of correct answers in percent, 0 when nothing
// was answered.
func (s *Session) Accuracy() int {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) * 100 / float64(total)))
}

// Review returns the pairs with at least one error, most missed first.
func (s *Session) Review() []*vocab.Pair {
	var out []*vocab.Pair
	for _, p := range s.Pairs {
		if p.ErrorCount > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ErrorCount > out[j].ErrorCount })
	return out
}
