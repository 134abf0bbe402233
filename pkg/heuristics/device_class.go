package heuristics

import (
	"fmt"

	"github.com/mertakman/go-sessionsense/pkg/fingerprint"
	"github.com/mertakman/go-sessionsense/pkg/models"
)

// DeviceClass labels the session's device from the capability signals.
// The actual classification lives in the fingerprint package; this wrapper
// makes it addressable as an ordinary heuristic.
type DeviceClass struct{}

func NewDeviceClass() *DeviceClass { return &DeviceClass{} }

func (d *DeviceClass) Name() string { return "DeviceClass" }

func (d *DeviceClass) Trait() models.Trait { return models.TraitDeviceClass }

func (d *DeviceClass) Description() string {
	return "Classifies the device from GPU renderer, touch points, cores and memory."
}

func (d *DeviceClass) Evaluate(snap models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	if snap.Signals.Empty() {
		return skipped(d), nil
	}

	class, confidence := fingerprint.ClassifyDevice(snap.Signals)
	return models.Assessment{
		Heuristic:  d.Name(),
		Trait:      d.Trait(),
		Label:      class,
		Confidence: confidence,
		Reason: fmt.Sprintf("renderer %q, %d touch points, %d cores",
			snap.Signals.WebGLRenderer, snap.Signals.MaxTouchPoints, snap.Signals.HardwareConcurrency),
		Triggered: true,
	}, nil
}
