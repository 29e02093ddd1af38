package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/tomz197/vocabshooter/internal/config"
)

// ErrEmptyDeck is returned when a source has no pairs for a topic.
var ErrEmptyDeck = errors.New("deck has no pairs for topic")

// Source supplies the vocabulary pairs of a topic.
type Source interface {
	Load(ctx context.Context, topic Topic) ([]*Pair, error)
}

//go:generate mockgen -source=source.go -destination=mock/source_mock.go -package=mock_vocab

var mockPairs = []Pair{
	{ID: "1", Chinese: "你好", English: "hello"},
	{ID: "2", Chinese: "世界", English: "world"},
	{ID: "3", Chinese: "電腦", English: "computer"},
	{ID: "4", Chinese: "貓", English: "cat"},
	{ID: "5", Chinese: "狗", English: "dog"},
	{ID: "6", Chinese: "書", English: "book"},
	{ID: "7", Chinese: "水", English: "water"},
	{ID: "8", Chinese: "火", English: "fire"},
	{ID: "9", Chinese: "樹", English: "tree"},
	{ID: "10", Chinese: "車", English: "car"},
}

// MockSource returns the same built-in deck for every topic.
type MockSource struct{}

// Load returns fresh copies of the built-in pairs.
func (MockSource) Load(ctx context.Context, _ Topic) ([]*Pair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pairs := make([]*Pair, len(mockPairs))
	for i := range mockPairs {
		p := mockPairs[i]
		pairs[i] = &p
	}
	return pairs, nil
}

// FileSource reads decks from a settings-style file (yaml, toml or json),
// keyed by topic id:
//
//	travel:
//	  - chinese: 機場
//	    english: airport
//	    part_of_speech: noun
type FileSource struct {
	Path string
}

// Load reads the file and returns the pairs listed under topic.ID.
// Pairs without an id get a random one.
func (s FileSource) Load(ctx context.Context, topic Topic) ([]*Pair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(s.Path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", s.Path, err)
	}

	var raw []Pair
	if err := v.UnmarshalKey(topic.ID, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode topic %q: %w", topic.ID, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w %q", ErrEmptyDeck, topic.ID)
	}

	pairs := make([]*Pair, 0, len(raw))
	for i := range raw {
		p := raw[i]
		if err := config.Validate(p); err != nil {
			return nil, fmt.Errorf("topic %q entry %d: %w", topic.ID, i, err)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.English = strings.ToLower(strings.TrimSpace(p.English))
		p.Chinese = strings.TrimSpace(p.Chinese)
		p.ErrorCount = 0
		pairs = append(pairs, &p)
	}
	return pairs, nil
}

// FallbackSource tries Primary and falls back to Fallback on any error
// other than cancellation.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Logger   *log.Logger
}

// Load implements Source.
func (s FallbackSource) Load(ctx context.Context, topic Topic) ([]*Pair, error) {
	pairs, err := s.Primary.Load(ctx, topic)
	if err == nil {
		return pairs, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Warn("deck unavailable, using built-in deck", "topic", topic.ID, "err", err)
	}
	return s.Fallback.Load(ctx, topic)
}

// NewSource returns the deck file at path backed by the built-in deck, or
// the built-in deck alone when path is empty.
func NewSource(path string, logger *log.Logger) Source {
	if path == "" {
		return MockSource{}
	}
	return FallbackSource{
		Primary:  FileSource{Path: path},
		Fallback: MockSource{},
		Logger:   logger,
	}
}
