// Package runner runs an orion app in a desktop window using glfw and webgpu.
package runner

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/resurface/glimpse/desktop"
	"github.com/oliverbestmann/resurface/orion"
	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/resurface/pulse/webgpu"
	"github.com/pkg/profile"
)

type RunOptions struct {
	// app to run. This is the only field that is required
	App orion.App

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	PixelFormat pulse.PixelFormatRequirements
	Attributes  pulse.Attributes

	// write a cpu profile to the working directory
	CPUProfile bool
}

// Run opens a desktop window and renders the app into it using webgpu
// until the window is closed.
func Run(opts RunOptions) error {
	if opts.App == nil {
		return errors.New("App must not be nil")
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Orion"
	}

	if opts.CPUProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	source, err := desktop.NewSource()
	if err != nil {
		return err
	}

	defer source.Terminate()

	win, err := source.NewWindow(desktop.WindowOptions{
		Width:  opts.WindowWidth,
		Height: opts.WindowHeight,
		Title:  opts.WindowTitle,
	})

	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	ctx, err := pulse.New(win, pulse.Options{
		Driver:      webgpu.Driver{},
		PixelFormat: opts.PixelFormat,
		Attributes:  opts.Attributes,
	})

	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	defer ctx.Release()

	registry := orion.NewRegistry(source)
	registry.Register(win.ID(), ctx)

	loopState := &orion.LoopState{
		Registry: registry,
		Window:   win.ID(),
		Context:  ctx,
		App:      opts.App,
	}

	return loopState.Run()
}
