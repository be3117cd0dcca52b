package pulse_test

import (
	"testing"

	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/resurface/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessContext(t *testing.T) {
	driver := pulsetest.NewDriver()

	ctx, err := pulse.NewHeadless(64, 32, pulse.Options{Driver: driver})
	require.NoError(t, err)

	native := driver.Last()
	assert.True(t, native.Offscreen)

	width, height := ctx.Size()
	assert.Equal(t, uint32(64), width)
	assert.Equal(t, uint32(32), height)

	require.NoError(t, ctx.MakeCurrent())
	assert.True(t, ctx.IsCurrent())
	require.NoError(t, ctx.SwapBuffers())

	assert.Equal(t, pulsetest.DefaultPixelFormat, ctx.PixelFormat())
	assert.Equal(t, pulse.APIOpenGL, ctx.API())

	ctx.Release()
	assert.True(t, native.Released())
	assert.ErrorIs(t, ctx.MakeCurrent(), pulse.ErrReleased)
	assert.False(t, ctx.IsCurrent())
}

func TestHeadlessContext_InvalidSize(t *testing.T) {
	driver := pulsetest.NewDriver()

	_, err := pulse.NewHeadless(0, 32, pulse.Options{Driver: driver})

	var creationErr *pulse.CreationError
	require.ErrorAs(t, err, &creationErr)
	assert.Empty(t, driver.Contexts)
}

func TestHeadlessContext_SharesWithWindowContext(t *testing.T) {
	driver := pulsetest.NewDriver()

	headless, err := pulse.NewHeadless(16, 16, pulse.Options{Driver: driver})
	require.NoError(t, err)
	defer headless.Release()

	ctx, err := pulse.New(&testWindow{native: "window"}, pulse.Options{Driver: driver, Share: headless})
	require.NoError(t, err)
	defer ctx.Release()

	assert.Same(t, headless.Native(), ctx.Native().(*pulsetest.Context).Share)
}

func TestPixelFormat_Satisfies(t *testing.T) {
	format := pulsetest.DefaultPixelFormat

	assert.True(t, format.Satisfies(pulse.PixelFormatRequirements{}))
	assert.True(t, format.Satisfies(pulse.PixelFormatRequirements{ColorBits: 24, DepthBits: 16, SRGB: true}))

	assert.False(t, format.Satisfies(pulse.PixelFormatRequirements{AlphaBits: 16}))
	assert.False(t, format.Satisfies(pulse.PixelFormatRequirements{Multisampling: 4}))
	assert.False(t, format.Satisfies(pulse.PixelFormatRequirements{Stereoscopy: true}))
	assert.False(t, format.Satisfies(pulse.PixelFormatRequirements{Software: true}))
}
