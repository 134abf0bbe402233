package heuristics

import (
	"fmt"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Identity labels produced by FingerprintDrift.
const (
	FingerprintStable  = "stable"
	FingerprintChanged = "changed"
)

// FingerprintDrift is a stateful heuristic: it compares the session's
// fingerprint digest against the record stored at the previous analysis.
// A mid-session digest change usually means spoofed or randomized
// capability signals.
type FingerprintDrift struct {
	Confidence float64
}

func NewFingerprintDrift() *FingerprintDrift {
	return &FingerprintDrift{Confidence: 0.6}
}

func (f *FingerprintDrift) Name() string { return "FingerprintDrift" }

func (f *FingerprintDrift) Trait() models.Trait { return models.TraitIdentity }

func (f *FingerprintDrift) Description() string {
	return "Detects device fingerprint changes between analyses of the same session."
}

func (f *FingerprintDrift) Evaluate(snap models.SessionSnapshot, last *models.SessionRecord) (models.Assessment, error) {
	// First analysis: nothing to compare against.
	if last == nil || last.FingerprintDigest == "" || snap.FingerprintDigest == "" {
		return skipped(f), nil
	}

	label := FingerprintStable
	reason := "fingerprint digest unchanged since last analysis"
	if snap.FingerprintDigest != last.FingerprintDigest {
		label = FingerprintChanged
		reason = fmt.Sprintf("digest changed since %s", last.Timestamp.Format("15:04:05"))
	}

	return models.Assessment{
		Heuristic:  f.Name(),
		Trait:      f.Trait(),
		Label:      label,
		Confidence: f.Confidence,
		Reason:     reason,
		Triggered:  true,
	}, nil
}
