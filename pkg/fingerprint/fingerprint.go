// Package fingerprint derives stable digests and a coarse device class from
// the capability signals a browser session reports once.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Device class labels produced by ClassifyDevice.
const (
	ClassMobile      = "mobile"
	ClassTablet      = "tablet"
	ClassDesktop     = "desktop"
	ClassWorkstation = "workstation"
	ClassVirtualized = "virtualized"
	ClassUnknown     = "unknown"
)

// Renderer substrings that identify software or virtualized GPUs.
var virtualRenderers = []string{
	"swiftshader", "llvmpipe", "vmware", "virtualbox", "parallels", "mesa offscreen",
}

// Renderer substrings common on phone and tablet GPUs.
var mobileRenderers = []string{
	"adreno", "mali", "powervr", "apple gpu", "apple a", "samsung xclipse",
}

// Digest computes the composite SHA-256 fingerprint of the device signals.
// Identical signals always produce the same digest; any changed signal
// produces a different one.
func Digest(signals models.DeviceSignals) string {
	parts := []string{
		signals.CanvasHash,
		signals.AudioHash,
		signals.WebGLVendor,
		signals.WebGLRenderer,
		strings.Join(signals.Fonts, ","),
		fmt.Sprintf("%d", signals.HardwareConcurrency),
		fmt.Sprintf("%g", signals.DeviceMemoryGB),
		fmt.Sprintf("%d", signals.MaxTouchPoints),
		signals.Platform,
		signals.Language,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// HashUserAgent hashes the raw user agent string so the raw value never
// has to be stored.
func HashUserAgent(userAgent string) string {
	sum := sha256.Sum256([]byte(userAgent))
	return hex.EncodeToString(sum[:])
}

// ClassifyDevice maps the capability signals to a rough device class using
// fixed thresholds. The confidence reflects how many signals were actually
// present; with no signals at all the class is unknown.
func ClassifyDevice(signals models.DeviceSignals) (class string, confidence float64) {
	if signals.Empty() {
		return ClassUnknown, 0
	}

	confidence = signalCompleteness(signals)
	renderer := strings.ToLower(signals.WebGLRenderer)

	for _, v := range virtualRenderers {
		if strings.Contains(renderer, v) {
			return ClassVirtualized, confidence
		}
	}

	mobileGPU := false
	for _, m := range mobileRenderers {
		if strings.Contains(renderer, m) {
			mobileGPU = true
			break
		}
	}

	if signals.MaxTouchPoints > 0 {
		// Touch hardware: cores and memory separate phones from tablets.
		if signals.HardwareConcurrency > 4 || signals.DeviceMemoryGB >= 6 {
			return ClassTablet, confidence
		}
		return ClassMobile, confidence
	}
	if mobileGPU {
		return ClassMobile, confidence
	}

	if signals.HardwareConcurrency >= 12 || signals.DeviceMemoryGB >= 32 {
		return ClassWorkstation, confidence
	}
	return ClassDesktop, confidence
}

// signalCompleteness returns the share of capability signals that carry a
// non-zero value.
func signalCompleteness(signals models.DeviceSignals) float64 {
	var present, total float64
	for _, ok := range []bool{
		signals.CanvasHash != "",
		signals.AudioHash != "",
		signals.WebGLVendor != "",
		signals.WebGLRenderer != "",
		len(signals.Fonts) > 0,
		signals.HardwareConcurrency > 0,
		signals.DeviceMemoryGB > 0,
		signals.Platform != "",
		signals.Language != "",
	} {
		total++
		if ok {
			present++
		}
	}
	return present / total
}
