package heuristics

import (
	"fmt"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Automation labels produced by InputAutomation.
const (
	InputOrganic  = "organic"
	InputScripted = "scripted"
)

// InputAutomation flags input streams that are too regular to be human:
// a near-zero inter-key interval spread, or intervals that keep landing on
// an exact millisecond grid the way timer-driven scripts do.
type InputAutomation struct {
	// MaxStdDevMs: human inter-key intervals below this spread read as
	// synthetic.
	MaxStdDevMs float64

	// MaxGridRatio bounds the share of grid-aligned intervals.
	MaxGridRatio float64

	MinKeystrokes int

	Confidence float64
}

// NewInputAutomation creates the heuristic with explicit thresholds.
func NewInputAutomation(maxStdDevMs, maxGridRatio float64, minKeystrokes int) *InputAutomation {
	return &InputAutomation{
		MaxStdDevMs:   maxStdDevMs,
		MaxGridRatio:  maxGridRatio,
		MinKeystrokes: minKeystrokes,
		Confidence:    0.55,
	}
}

// DefaultInputAutomation returns the heuristic with the shipped thresholds:
// stddev under 8ms across 12+ keystrokes, or more than 60% grid-aligned
// intervals, reads as scripted.
func DefaultInputAutomation() *InputAutomation {
	return NewInputAutomation(8, 0.6, 12)
}

func (a *InputAutomation) Name() string { return "InputAutomation" }

func (a *InputAutomation) Trait() models.Trait { return models.TraitAutomation }

func (a *InputAutomation) Description() string {
	return "Flags keystroke timing that is too regular or too grid-aligned to be human."
}

func (a *InputAutomation) Evaluate(snap models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	if snap.KeystrokeCount < a.MinKeystrokes {
		return skipped(a), nil
	}

	label := InputOrganic
	reason := fmt.Sprintf("interval spread %.1fms, grid ratio %.2f", snap.KeyIntervalStdDev, snap.KeyGridRatio)
	if snap.KeyIntervalStdDev < a.MaxStdDevMs {
		label = InputScripted
		reason = fmt.Sprintf("interval spread %.1fms below %.0fms across %d keystrokes",
			snap.KeyIntervalStdDev, a.MaxStdDevMs, snap.KeystrokeCount)
	} else if snap.KeyGridRatio > a.MaxGridRatio {
		label = InputScripted
		reason = fmt.Sprintf("%.0f%% of intervals grid-aligned", snap.KeyGridRatio*100)
	}

	return models.Assessment{
		Heuristic:  a.Name(),
		Trait:      a.Trait(),
		Label:      label,
		Confidence: a.Confidence,
		Reason:     reason,
		Triggered:  true,
	}, nil
}
