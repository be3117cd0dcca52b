// Package webgpu implements a pulse.Driver on top of webgpu.
//
// The logical context is the webgpu device. The surface binding is a
// configured wgpu.Surface created from the native window, so releasing
// the surface while the app is in the background keeps all gpu objects
// of the device alive.
package webgpu

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// device holds the gpu objects that make up a logical context. It is
// reference counted, as contexts created with a share context use the
// same device.
type device struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	refs atomic.Int32
}

func newDevice(forceFallback bool) (dev *device, err error) {
	defer func() {
		if err != nil && dev != nil {
			dev.destroy()
			dev = nil
		}
	}()

	dev = &device{}
	dev.refs.Store(1)

	// the instance must stay alive, surfaces are created later on
	dev.Instance = wgpu.CreateInstance(nil)

	dev.Adapter, err = dev.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallback,
	})

	if err != nil {
		return dev, fmt.Errorf("request adapter: %w", err)
	}

	// get a Device with the default settings
	dev.Device, err = dev.Adapter.RequestDevice(nil)
	if err != nil {
		return dev, fmt.Errorf("request device: %w", err)
	}

	dev.Queue = dev.Device.GetQueue()

	return dev, nil
}

func (d *device) acquire() *device {
	d.refs.Add(1)
	return d
}

// release drops one reference and destroys the device once nobody uses it anymore.
func (d *device) release() {
	if d.refs.Add(-1) == 0 {
		slog.Debug("Releasing webgpu device")
		d.destroy()
	}
}

func (d *device) destroy() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}
