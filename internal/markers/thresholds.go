package markers

import (
	"fmt"
	"sort"
)

// Thresholds are the flagging cut-offs shared by every detector. A value is
// read-only once handed to an analyzer.
type Thresholds struct {
	TTRLow               float64 `json:"ttr_low" yaml:"ttr_low" mapstructure:"ttr_low"`
	FillerRateHigh       float64 `json:"filler_rate_high" yaml:"filler_rate_high" mapstructure:"filler_rate_high"`
	PauseRateHigh        float64 `json:"pause_rate_high" yaml:"pause_rate_high" mapstructure:"pause_rate_high"`
	PronounRatioHigh     float64 `json:"pronoun_ratio_high" yaml:"pronoun_ratio_high" mapstructure:"pronoun_ratio_high"`
	GenericPronounHigh   float64 `json:"generic_pronoun_high" yaml:"generic_pronoun_high" mapstructure:"generic_pronoun_high"`
	RepetitionSimilarity float64 `json:"repetition_similarity" yaml:"repetition_similarity" mapstructure:"repetition_similarity"`
	HedgeRateHigh        float64 `json:"hedge_rate_high" yaml:"hedge_rate_high" mapstructure:"hedge_rate_high"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TTRLow:               0.40,
		FillerRateHigh:       0.08,
		PauseRateHigh:        0.03,
		PronounRatioHigh:     0.25,
		GenericPronounHigh:   0.10,
		RepetitionSimilarity: 0.70,
		HedgeRateHigh:        0.02,
	}
}

func (t *Thresholds) fields() map[string]*float64 {
	return map[string]*float64{
		"ttr_low":               &t.TTRLow,
		"filler_rate_high":      &t.FillerRateHigh,
		"pause_rate_high":       &t.PauseRateHigh,
		"pronoun_ratio_high":    &t.PronounRatioHigh,
		"generic_pronoun_high":  &t.GenericPronounHigh,
		"repetition_similarity": &t.RepetitionSimilarity,
		"hedge_rate_high":       &t.HedgeRateHigh,
	}
}

// ThresholdNames lists the configurable threshold names in sorted order.
func ThresholdNames() []string {
	var t Thresholds
	names := make([]string, 0, 7)
	for name := range t.fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override returns a copy of t with the named values replaced. Unknown names
// are rejected so a typo cannot silently fall back to a default.
func (t Thresholds) Override(values map[string]float64) (Thresholds, error) {
	out := t
	fields := out.fields()
	for name, v := range values {
		ptr, ok := fields[name]
		if !ok {
			return t, fmt.Errorf("unknown threshold %q", name)
		}
		*ptr = v
	}
	if err := out.Validate(); err != nil {
		return t, err
	}
	return out, nil
}

// Validate rejects non-positive thresholds and a similarity cut-off above 1.
func (t Thresholds) Validate() error {
	for _, name := range ThresholdNames() {
		if v := *t.fields()[name]; v <= 0 {
			return fmt.Errorf("threshold %s must be positive, got %v", name, v)
		}
	}
	if t.RepetitionSimilarity > 1 {
		return fmt.Errorf("threshold repetition_similarity must be at most 1, got %v", t.RepetitionSimilarity)
	}
	return nil
}
