package heuristics

import (
	"fmt"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Age range labels produced by TypingTempo.
const (
	AgeRangeYoung  = "18-30"
	AgeRangeMiddle = "30-50"
	AgeRangeSenior = "50+"
)

// TypingTempo estimates an age range from the mean inter-key interval.
// Faster, steadier typing maps to the younger bands. This is an
// illustrative heuristic, nothing more; the confidence stays low on purpose.
type TypingTempo struct {
	// YoungMaxMs is the exclusive upper bound of the mean interval for the
	// youngest band; MidMaxMs for the middle band.
	YoungMaxMs float64
	MidMaxMs   float64

	// MinKeystrokes is the minimum sample count before a label is produced.
	MinKeystrokes int

	// Confidence assigned to the produced label.
	Confidence float64
}

// NewTypingTempo creates the heuristic with explicit thresholds.
func NewTypingTempo(youngMaxMs, midMaxMs float64, minKeystrokes int) *TypingTempo {
	return &TypingTempo{
		YoungMaxMs:    youngMaxMs,
		MidMaxMs:      midMaxMs,
		MinKeystrokes: minKeystrokes,
		Confidence:    0.35,
	}
}

// DefaultTypingTempo returns the heuristic with the shipped thresholds:
// mean interval under 180ms reads as 18-30, under 280ms as 30-50.
func DefaultTypingTempo() *TypingTempo {
	return NewTypingTempo(180, 280, 10)
}

func (t *TypingTempo) Name() string { return "TypingTempo" }

func (t *TypingTempo) Trait() models.Trait { return models.TraitAgeRange }

func (t *TypingTempo) Description() string {
	return "Maps the mean inter-key interval to a rough age range."
}

func (t *TypingTempo) Evaluate(snap models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	if snap.KeystrokeCount < t.MinKeystrokes || snap.KeyIntervalMean <= 0 {
		return skipped(t), nil
	}

	label := AgeRangeSenior
	switch {
	case snap.KeyIntervalMean < t.YoungMaxMs:
		label = AgeRangeYoung
	case snap.KeyIntervalMean < t.MidMaxMs:
		label = AgeRangeMiddle
	}

	return models.Assessment{
		Heuristic:  t.Name(),
		Trait:      t.Trait(),
		Label:      label,
		Confidence: t.Confidence,
		Reason: fmt.Sprintf("mean inter-key interval %.0fms over %d keystrokes",
			snap.KeyIntervalMean, snap.KeystrokeCount),
		Triggered: true,
	}, nil
}
