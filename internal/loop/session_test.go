package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/vocabshooter/internal/shooter"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func testPairs() []*vocab.Pair {
	return []*vocab.Pair{
		{ID: "1", Chinese: "你好", English: "hello"},
		{ID: "2", Chinese: "世界", English: "world"},
		{ID: "3", Chinese: "貓", English: "cat"},
	}
}

func TestSession_RecordSumsRounds(t *testing.T) {
	s := NewSession(testPairs(), newClock().Now)

	s.Record(nil, shooter.Stats{Correct: 3, Incorrect: 0, Streak: 3, MaxStreak: 3})
	s.Record(nil, shooter.Stats{Correct: 2, Incorrect: 1, Streak: 1, MaxStreak: 5})

	assert.Equal(t, 2, s.Rounds)
	assert.Equal(t, 5, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
	assert.Equal(t, 1, s.Streak, "streak carries from the last round")
	assert.Equal(t, 5, s.MaxStreak)
}

func TestSession_MissedItemsCountErrors(t *testing.T) {
	pairs := testPairs()
	s := NewSession(pairs, nil)
	missed := []vocab.QuizItem{
		vocab.NewQuizItem(pairs[2], vocab.ZhToEn),
		vocab.NewQuizItem(pairs[0], vocab.ZhToEn),
	}

	s.Record(missed, shooter.Stats{Incorrect: 2})
	s.Record(missed[:1], shooter.Stats{Incorrect: 1})

	assert.Equal(t, 1, pairs[0].ErrorCount)
	assert.Zero(t, pairs[1].ErrorCount)
	assert.Equal(t, 2, pairs[2].ErrorCount)

	review := s.Review()
	require.Len(t, review, 2)
	assert.Equal(t, "cat", review[0].English, "most missed first")
	assert.Equal(t, "hello", review[1].English)
}

func TestSession_WPM(t *testing.T) {
	clock := newClock()
	s := NewSession(nil, clock.Now)
	assert.Zero(t, s.WPM(), "no time elapsed")

	s.Record(nil, shooter.Stats{Correct: 45})
	clock.Advance(90 * time.Second)
	assert.Equal(t, 30, s.WPM())
	assert.Equal(t, 90*time.Second, s.Elapsed())
}

func TestSession_Accuracy(t *testing.T) {
	tests := []struct {
		name               string
		correct, incorrect int
		want               int
	}{
		{"nothing answered", 0, 0, 0},
		{"perfect", 10, 0, 100},
		{"rounds half up", 2, 1, 67},
		{"all missed", 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil, nil)
			s.Record(nil, shooter.Stats{Correct: tt.correct, Incorrect: tt.incorrect})
			assert.Equal(t, tt.want, s.Accuracy())
		})
	}
}
