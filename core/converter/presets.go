package converter

import "fmt"

// Tier is a named video quality level. The closed constant set keeps
// invalid tiers out of the engine; free strings are parsed once at the
// CLI/config boundary via ParseTier.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// VideoPreset holds the concrete encoder parameters for one tier.
type VideoPreset struct {
	CRF    int
	Preset string
}

// videoPresets is the static tier table. Lower CRF means higher quality
// and a larger file.
var videoPresets = map[Tier]VideoPreset{
	TierHigh:   {CRF: 18, Preset: "slow"},
	TierMedium: {CRF: 23, Preset: "medium"},
	TierLow:    {CRF: 28, Preset: "fast"},
}

// PresetFor returns the encoder parameters for a tier. Unknown tiers are
// rejected rather than silently mapped.
func PresetFor(tier Tier) (VideoPreset, error) {
	preset, ok := videoPresets[tier]
	if !ok {
		return VideoPreset{}, fmt.Errorf("unknown quality tier: %q", tier)
	}
	return preset, nil
}

// ParseTier converts free-form user input into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierHigh, TierMedium, TierLow:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown quality tier: %q (expected high, medium or low)", s)
	}
}

// ValidateImageQuality checks the raw 1-100 image quality scalar. The
// value is passed to the encoder unmodified; there is no tiering on the
// image path.
func ValidateImageQuality(quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("image quality %d out of range (1-100)", quality)
	}
	return nil
}
