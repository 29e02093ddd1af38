package shooter

// Stats are the per-round scoring counters.
type Stats struct {
	Correct   int
	Incorrect int
	Streak    int
	MaxStreak int // Highest streak reached, starting from the carried-in streak
}

func newStats(streak int) Stats {
	if streak < 0 {
		streak = 0
	}
	return Stats{Streak: streak, MaxStreak: streak}
}

func (s *Stats) hit() {
	s.Correct++
	s.Streak++
	if s.Streak > s.MaxStreak {
		s.MaxStreak = s.Streak
	}
}

func (s *Stats) crash() {
	s.Incorrect++
	s.Streak = 0
}
