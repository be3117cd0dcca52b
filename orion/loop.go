package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/resurface/glimpse"
	"github.com/oliverbestmann/resurface/pulse"
)

// App is rendered by the LoopState.
type App interface {
	// Initialize is called once before the first frame, with the context already current.
	Initialize(ctx *pulse.Context) error

	// Update is called once per frame with the input collected since the previous frame.
	Update(input *glimpse.InputState) error

	// Draw renders the frame. It is never called while the context is suspended.
	Draw(ctx *pulse.Context) error
}

// LoopState drives rendering of a single window. Frames are only
// rendered while the context is active, a suspended loop blocks
// on the event source until the window is resumed.
type LoopState struct {
	Registry *Registry
	Window   glimpse.WindowID
	Context  *pulse.Context
	App      App

	// Optional callback receiving every event after it was dispatched
	OnEvent func(glimpse.Event)

	Input       glimpse.InputState
	Frames      FrameTimes
	Initialized bool

	closed bool
}

// Run renders frames until the window was asked to close.
func (s *LoopState) Run() error {
	for !s.closed {
		if s.Context.IsSuspended() {
			// nothing can be drawn, park until the window is resumed
			s.Frames.Pause()
			s.Registry.WaitEvents(s.handleEvent)
			continue
		}

		s.Registry.PollEvents(s.handleEvent)

		if s.closed || s.Context.IsSuspended() {
			continue
		}

		if err := s.loopOnce(); err != nil {
			return err
		}
	}

	return nil
}

func (s *LoopState) handleEvent(event glimpse.Event) {
	if event.Target() == s.Window {
		s.Input.Apply(event)

		if _, ok := event.(glimpse.CloseRequestedEvent); ok {
			s.closed = true
		}
	}

	if s.OnEvent != nil {
		s.OnEvent(event)
	}
}

func (s *LoopState) loopOnce() error {
	err := s.Context.MakeCurrent()
	if errors.Is(err, pulse.ErrContextLost) {
		// the surface went away without a suspend notification,
		// wait for the window to change instead of spinning
		slog.Debug("Context lost, waiting for events", slog.String("error", err.Error()))
		s.Frames.Pause()
		s.Registry.WaitEvents(s.handleEvent)
		return nil
	}

	if err != nil {
		return fmt.Errorf("make current: %w", err)
	}

	if !s.Initialized {
		s.Initialized = true

		if err := s.App.Initialize(s.Context); err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
	}

	if err := s.App.Update(&s.Input); err != nil {
		return fmt.Errorf("update app: %w", err)
	}

	s.Input.NextTick()

	if err := s.App.Draw(s.Context); err != nil {
		if errors.Is(err, pulse.ErrContextLost) {
			return nil
		}

		return fmt.Errorf("draw app: %w", err)
	}

	err = s.Context.SwapBuffers()
	if err != nil && !errors.Is(err, pulse.ErrContextLost) {
		return fmt.Errorf("swap buffers: %w", err)
	}

	if s.Frames.Tick() {
		slog.Debug("Frame times",
			slog.Float64("fps", s.Frames.FPS()),
			slog.Duration("max", s.Frames.MaxDuration),
		)
	}

	return nil
}
