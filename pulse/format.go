package pulse

import "fmt"

type API uint8

const (
	// APIAny lets the driver pick its native api.
	APIAny API = iota
	APIOpenGL
	APIOpenGLES
	APIWebGPU
)

func (a API) String() string {
	switch a {
	case APIAny:
		return "any"
	case APIOpenGL:
		return "OpenGL"
	case APIOpenGLES:
		return "OpenGL ES"
	case APIWebGPU:
		return "WebGPU"
	default:
		return fmt.Sprintf("API(%d)", uint8(a))
	}
}

type Profile uint8

const (
	ProfileAny Profile = iota
	ProfileCore
	ProfileCompatibility
)

type Robustness uint8

const (
	RobustnessNone Robustness = iota
	RobustnessNoResetNotification
	RobustnessLoseContextOnReset
)

// Version is a major.minor api version. The zero value means "any".
type Version struct {
	Major, Minor uint8
}

func (v Version) IsZero() bool {
	return v == Version{}
}

func (v Version) Less(other Version) bool {
	return v.Major < other.Major || v.Major == other.Major && v.Minor < other.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Attributes describe the logical context requested from a Driver.
type Attributes struct {
	API     API
	Version Version
	Profile Profile

	Debug      bool
	Robustness Robustness

	// wait for the vertical blank before presenting a frame
	VSync bool
}

// PixelFormatRequirements restrict the pixel formats a driver may choose.
// Zero values mean "don't care".
type PixelFormatRequirements struct {
	ColorBits   uint8
	AlphaBits   uint8
	DepthBits   uint8
	StencilBits uint8

	FloatColorBuffer bool

	// Number of samples per pixel, 0 or 1 to disable multisampling.
	Multisampling uint16

	SRGB bool

	Stereoscopy bool

	// Request a software renderer. Drivers reject this if they only offer hardware rendering.
	Software bool
}

// PixelFormat describes the pixel format a context actually uses.
type PixelFormat struct {
	HardwareAccelerated bool

	ColorBits   uint8
	AlphaBits   uint8
	DepthBits   uint8
	StencilBits uint8

	Stereoscopy  bool
	DoubleBuffer bool

	Multisampling uint16

	SRGB bool
}

// Satisfies reports whether the pixel format fulfils the requirements.
func (pf PixelFormat) Satisfies(req PixelFormatRequirements) bool {
	switch {
	case pf.ColorBits < req.ColorBits:
		return false
	case pf.AlphaBits < req.AlphaBits:
		return false
	case pf.DepthBits < req.DepthBits:
		return false
	case pf.StencilBits < req.StencilBits:
		return false
	case req.Multisampling > 1 && pf.Multisampling < req.Multisampling:
		return false
	case req.SRGB && !pf.SRGB:
		return false
	case req.Stereoscopy && !pf.Stereoscopy:
		return false
	case req.Software && pf.HardwareAccelerated:
		return false
	}

	return true
}
