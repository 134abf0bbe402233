package heuristics

import (
	"fmt"
	"strings"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// Environment labels produced by EnvironmentMismatch.
const (
	EnvConsistent     = "consistent"
	EnvMaskedLocation = "masked-location"
	EnvHostedNetwork  = "hosted-network"
)

// ASN organization keywords that identify hosting providers. A browser
// session originating from a datacenter is usually a bot or a tunnel.
var defaultHostingKeywords = []string{
	"amazon", "aws", "google cloud", "microsoft azure", "digitalocean",
	"hetzner", "ovh", "linode", "vultr", "hosting", "datacenter",
}

// EnvironmentMismatch cross-checks the browser-reported timezone against
// the connection's GeoIP timezone and flags datacenter-hosted origins.
// It implements EnvironmentAware; without geographic context it skips.
type EnvironmentMismatch struct {
	HostingKeywords []string
	Confidence      float64
}

func NewEnvironmentMismatch() *EnvironmentMismatch {
	return &EnvironmentMismatch{
		HostingKeywords: defaultHostingKeywords,
		Confidence:      0.5,
	}
}

func (e *EnvironmentMismatch) Name() string { return "EnvironmentMismatch" }

func (e *EnvironmentMismatch) Trait() models.Trait { return models.TraitEnvironment }

func (e *EnvironmentMismatch) Description() string {
	return "Compares the client timezone with the IP timezone and flags hosted networks."
}

// Evaluate without environment context cannot run the cross-check.
func (e *EnvironmentMismatch) Evaluate(_ models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	return skipped(e), nil
}

// EvaluateWithEnv runs the actual cross-checks.
func (e *EnvironmentMismatch) EvaluateWithEnv(env EnvContext, snap models.SessionSnapshot, _ *models.SessionRecord) (models.Assessment, error) {
	if !env.HasGeo {
		return skipped(e), nil
	}

	org := strings.ToLower(env.ASNOrg)
	for _, kw := range e.HostingKeywords {
		if org != "" && strings.Contains(org, kw) {
			return e.assessment(EnvHostedNetwork,
				fmt.Sprintf("connection from hosting ASN %d (%s)", env.ASN, env.ASNOrg)), nil
		}
	}

	clientTZ := snap.Signals.ClientTimezone
	if clientTZ != "" && env.IPTimezone != "" && clientTZ != env.IPTimezone {
		return e.assessment(EnvMaskedLocation,
			fmt.Sprintf("client timezone %q vs connection timezone %q", clientTZ, env.IPTimezone)), nil
	}
	if clientTZ == "" || env.IPTimezone == "" {
		return skipped(e), nil
	}

	return e.assessment(EnvConsistent, "client and connection timezones agree"), nil
}

func (e *EnvironmentMismatch) assessment(label, reason string) models.Assessment {
	return models.Assessment{
		Heuristic:  e.Name(),
		Trait:      e.Trait(),
		Label:      label,
		Confidence: e.Confidence,
		Reason:     reason,
		Triggered:  true,
	}
}
