package vocab

import "math/rand"

// Mode selects how a stage treats answers.
type Mode string

const (
	ModeGuided Mode = "guided" // Answers are shown, misses are not scored
	ModeQuiz   Mode = "quiz"   // Answers are hidden, misses count as incorrect
)

// PlayMode is the choice made on the study screen.
type PlayMode int

const (
	PlayGuided   PlayMode = iota // Practice stage followed by a survival stage
	PlayInfinite                 // One endless guided stage
	PlaySurvival                 // One quiz stage
)

// Stage is one shooter round of a session.
type Stage struct {
	ID        string
	Label     string
	Mode      Mode
	Direction Direction
	Infinite  bool
	Items     []QuizItem
}

// BuildStages returns the stages for mode. Every stage gets its own
// shuffle of the zh_to_en items.
func BuildStages(pairs []*Pair, mode PlayMode, rng *rand.Rand) []Stage {
	items := QuizItems(pairs, ZhToEn)
	shuffled := func() []QuizItem {
		out := make([]QuizItem, len(items))
		copy(out, items)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	if mode == PlayInfinite {
		return []Stage{{
			ID:        "infinite-practice",
			Label:     "ZEN TRAINING",
			Mode:      ModeGuided,
			Direction: ZhToEn,
			Infinite:  true,
			Items:     shuffled(),
		}}
	}

	var stages []Stage
	if mode == PlayGuided {
		stages = append(stages, Stage{
			ID:        "practice-en",
			Label:     "PRACTICE MODE",
			Mode:      ModeGuided,
			Direction: ZhToEn,
			Items:     shuffled(),
		})
	}
	return append(stages, Stage{
		ID:        "quiz-en",
		Label:     "SURVIVAL MODE",
		Mode:      ModeQuiz,
		Direction: ZhToEn,
		Items:     shuffled(),
	})
}
