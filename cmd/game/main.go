package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/vocabshooter/internal/audio"
	"github.com/tomz197/vocabshooter/internal/config"
	"github.com/tomz197/vocabshooter/internal/loop"
	"github.com/tomz197/vocabshooter/internal/shooter"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal is in raw mode, so logs go to a file or nowhere.
	logOut, closeLog, err := config.OpenLogFile(settings)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := config.NewLogger(logOut, settings)
	if err != nil {
		return err
	}

	voice, closeVoice := newVoice(settings, logger)
	defer closeVoice()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := loop.NewApp(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Source:  vocab.NewSource(settings.DeckPath, logger),
		NewTone: newToneFactory(settings, logger),
		Voice:   voice,
		Logger:  logger,
	})
	if err := app.Run(ctx); err != nil {
		return err
	}
	return nil
}

// newToneFactory returns a constructor for one synth per round.
func newToneFactory(s *config.Settings, logger *log.Logger) func() shooter.Tone {
	if !s.Audio.Enabled {
		return func() shooter.Tone { return audio.Nop{} }
	}
	return func() shooter.Tone {
		return audio.NewSynth(s.Audio.SampleRate, s.Audio.Volume, audio.WithLogger(logger))
	}
}

// newVoice starts the speech engine shared by all rounds. Without a backend
// the game runs silently.
func newVoice(s *config.Settings, logger *log.Logger) (shooter.Voice, func()) {
	if !s.Speech.Enabled {
		return audio.Nop{}, func() {}
	}
	backend, err := audio.DetectBackend(s.Speech.Backend)
	if err != nil {
		if errors.Is(err, audio.ErrNoSpeechBackend) {
			logger.Warn("speech disabled", "err", err)
		}
		return audio.Nop{}, func() {}
	}
	logger.Info("speech backend", "name", backend.Name, "path", backend.Path)
	engine := audio.NewEngine(backend, s.Speech.Rate, audio.WithSpeechLogger(logger))
	return engine, func() {
		if err := engine.Close(); err != nil {
			logger.Warn("failed to close speech engine", "err", err)
		}
	}
}
