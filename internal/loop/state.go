package loop

// GameState represents the current screen of a session.
type GameState int

const (
	GameStateMenu    GameState = iota // Topic selection
	GameStateLoading                  // Deck is being fetched
	GameStateStudy                    // Vocabulary review and mode choice
	GameStatePlaying                  // A shooter round is on screen
	GameStateSummary                  // Session results
)

func (s GameState) String() string {
	switch s {
	case GameStateMenu:
		return "menu"
	case GameStateLoading:
		return "loading"
	case GameStateStudy:
		return "study"
	case GameStatePlaying:
		return "playing"
	case GameStateSummary:
		return "summary"
	default:
		return "unknown"
	}
}
