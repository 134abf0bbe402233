package heuristics

import (
	"fmt"
	"strings"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Stress level labels produced by StressComposite.
const (
	StressCalm     = "calm"
	StressElevated = "elevated"
	StressHigh     = "high"
)

// StressComposite estimates a stress level from dispersion signals: the
// pointer micro-correction rate, the pointer velocity dispersion, the
// keystroke rhythm dispersion and the scroll speed. One tripped indicator
// reads as elevated, two or more as high.
type StressComposite struct {
	// MaxMicroCorrectionRate is the calm upper bound on the share of
	// pointer samples flagged as micro-corrections.
	MaxMicroCorrectionRate float64

	// MaxPointerCV bounds pointer velocity stddev/mean.
	MaxPointerCV float64

	// MaxKeyCV bounds keystroke interval stddev/mean.
	MaxKeyCV float64

	// MaxScrollSpeed bounds the mean scroll speed in px/s. Frantic
	// scrolling joins the other indicators.
	MaxScrollSpeed float64

	// Minimum samples before the corresponding indicator participates.
	MinPointerSamples int
	MinKeystrokes     int
	MinScrollSamples  int

	Confidence float64
}

// NewStressComposite creates the heuristic with explicit thresholds.
func NewStressComposite(maxCorrectionRate, maxPointerCV, maxKeyCV float64, minPointer, minKeys int) *StressComposite {
	return &StressComposite{
		MaxMicroCorrectionRate: maxCorrectionRate,
		MaxPointerCV:           maxPointerCV,
		MaxKeyCV:               maxKeyCV,
		MaxScrollSpeed:         2500,
		MinPointerSamples:      minPointer,
		MinKeystrokes:          minKeys,
		MinScrollSamples:       10,
		Confidence:             0.4,
	}
}

// DefaultStressComposite returns the heuristic with the shipped thresholds.
func DefaultStressComposite() *StressComposite {
	return NewStressComposite(0.18, 1.4, 0.9, 20, 10)
}

func (s *StressComposite) Name() string { return "StressComposite" }

func (s *StressComposite) Trait() models.Trait { return models.TraitStress }

func (s *StressComposite) Description() string {
	return "Combines micro-correction rate, pointer jitter and typing rhythm dispersion into a stress level."
}

func (s *StressComposite) Evaluate(snap models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	enoughPointer := snap.PointerCount >= s.MinPointerSamples
	enoughKeys := snap.KeystrokeCount >= s.MinKeystrokes
	if !enoughPointer && !enoughKeys {
		return skipped(s), nil
	}

	var tripped []string
	if enoughPointer {
		if snap.MicroCorrectionRate > s.MaxMicroCorrectionRate {
			tripped = append(tripped, fmt.Sprintf("micro-correction rate %.2f", snap.MicroCorrectionRate))
		}
		if snap.PointerVelocityMean > 0 &&
			snap.PointerVelocityStdDev/snap.PointerVelocityMean > s.MaxPointerCV {
			tripped = append(tripped, "erratic pointer velocity")
		}
	}
	if enoughKeys && snap.KeyIntervalMean > 0 &&
		snap.KeyIntervalStdDev/snap.KeyIntervalMean > s.MaxKeyCV {
		tripped = append(tripped, "bursty typing rhythm")
	}
	if snap.ScrollCount >= s.MinScrollSamples && snap.ScrollSpeedMean > s.MaxScrollSpeed {
		tripped = append(tripped, fmt.Sprintf("frantic scrolling at %.0f px/s", snap.ScrollSpeedMean))
	}

	label := StressCalm
	reason := "dispersion signals within calm bounds"
	switch {
	case len(tripped) >= 2:
		label = StressHigh
		reason = strings.Join(tripped, "; ")
	case len(tripped) == 1:
		label = StressElevated
		reason = tripped[0]
	}

	return models.Assessment{
		Heuristic:  s.Name(),
		Trait:      s.Trait(),
		Label:      label,
		Confidence: s.Confidence,
		Reason:     reason,
		Triggered:  true,
	}, nil
}
