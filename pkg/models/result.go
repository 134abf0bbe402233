package models

import "time"

// Trait identifies the quality a heuristic estimates.
type Trait string

const (
	TraitAgeRange    Trait = "age_range"
	TraitStress      Trait = "stress_level"
	TraitDeviceClass Trait = "device_class"
	TraitAutomation  Trait = "automation"
	TraitIdentity    Trait = "identity"
	TraitEnvironment Trait = "environment"
)

// Assessment is the output of a single heuristic.
//
// The library does NOT make hard decisions. Every label is a rough,
// fixed-threshold estimate and the Confidence field reflects that: values
// stay deliberately low. Integrating code decides what, if anything, to do
// with a label.
type Assessment struct {
	// Heuristic is the name of the heuristic that produced this assessment.
	Heuristic string `json:"heuristic"`

	// Trait is the estimated quality (age range, stress level, ...).
	Trait Trait `json:"trait"`

	// Label is the heuristic's estimate, e.g. "30-50" or "elevated".
	Label string `json:"label"`

	// Confidence in [0,1]. Rough estimates never approach 1.
	Confidence float64 `json:"confidence"`

	// Reason is a human-readable explanation of why the label was chosen.
	Reason string `json:"reason"`

	// Triggered is false when the heuristic had too little signal to
	// produce a label. Untriggered assessments are omitted from reports.
	Triggered bool `json:"-"`
}

// TraitReport aggregates the assessments of one analysis pass.
type TraitReport struct {
	SessionID   string    `json:"session_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Assessments lists every triggered heuristic, in evaluation order.
	Assessments []Assessment `json:"assessments"`

	// Labels maps each trait to the label of the last triggered heuristic
	// for that trait (heuristics run in the order they were added).
	Labels map[Trait]string `json:"labels"`
}
