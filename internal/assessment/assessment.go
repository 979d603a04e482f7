// Package assessment scores water quality from five environmental readings
// with a fixed linear formula. Nothing is learned or persisted.
package assessment

import (
	"cmp"
	"math"
	"slices"

	"github.com/gidroatlas/gidroatlas/pkg/formatting"
)

// Label is a water quality category.
type Label string

const (
	Excellent Label = "Excellent"
	Good      Label = "Good"
	Moderate  Label = "Moderate"
	Poor      Label = "Poor"
	Critical  Label = "Critical"
)

// Labels lists the categories in tie-break order.
var Labels = []Label{Excellent, Good, Moderate, Poor, Critical}

var thresholds = map[Label]float64{
	Excellent: 0.9,
	Good:      0.7,
	Moderate:  0.45,
	Poor:      0.2,
	Critical:  0,
}

// Reading holds optional measurements. A nil field takes its default.
type Reading struct {
	PH              *float64 `json:"ph,omitempty"`
	Turbidity       *float64 `json:"turbidity,omitempty"`
	DissolvedOxygen *float64 `json:"dissolved_oxygen,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Conductivity    *float64 `json:"conductivity,omitempty"`
}

const (
	DefaultPH              = 7.0
	DefaultTurbidity       = 2.0
	DefaultDissolvedOxygen = 8.0
	DefaultTemperature     = 20.0
	DefaultConductivity    = 200.0
)

const bias = 0.5

// Feature is one input with its raw value and fixed weight.
type Feature struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// Assessment is the result of Assess.
type Assessment struct {
	Score             float64           `json:"score"`
	Label             Label             `json:"label"`
	Probabilities     map[Label]float64 `json:"probabilities"`
	ImportantFeatures []Feature         `json:"important_features"`
	Explanation       string            `json:"explanation"`
	IsSimulation      bool              `json:"is_simulation"`
}

// Explanation accompanies every assessment.
const Explanation = "Simulated assessment: a fixed linear combination of pH, turbidity, " +
	"dissolved oxygen, temperature, and conductivity produces a score between 0 and 1 " +
	"and a probability for each quality class. It is a demonstration and does not " +
	"replace a real model."

type term struct {
	Feature
	contribution float64
}

func value(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func terms(r Reading) []term {
	ph := value(r.PH, DefaultPH)
	turbidity := value(r.Turbidity, DefaultTurbidity)
	oxygen := value(r.DissolvedOxygen, DefaultDissolvedOxygen)
	temperature := value(r.Temperature, DefaultTemperature)
	conductivity := value(r.Conductivity, DefaultConductivity)

	build := func(name string, raw, feature, weight float64) term {
		return term{
			Feature:      Feature{Name: name, Value: raw, Weight: weight},
			contribution: weight * feature,
		}
	}

	return []term{
		build("ph", ph, math.Abs(ph-7), -0.6),
		build("turbidity", turbidity, math.Min(turbidity/10, 5), -0.9),
		build("dissolved_oxygen", oxygen, oxygen, 1.4),
		build("temperature", temperature, math.Abs(temperature-20)/10, -0.2),
		build("conductivity", conductivity, conductivity/1000, -0.001),
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Assess scores r. The score is the sigmoid of the weighted feature sum
// plus bias, clamped to [0, 1]. Each label's logit is 5 * (score - threshold)
// and probabilities are the softmax of those logits rounded to three
// decimals. The label is the most probable category, earliest in Labels on ties.
func Assess(r Reading) Assessment {
	ts := terms(r)

	logit := bias
	for _, t := range ts {
		logit += t.contribution
	}
	score := min(max(sigmoid(logit), 0), 1)

	exps := make([]float64, len(Labels))
	sum := 0.0
	for i, l := range Labels {
		exps[i] = math.Exp(5 * (score - thresholds[l]))
		sum += exps[i]
	}

	probs := make(map[Label]float64, len(Labels))
	label := Labels[0]
	for i, l := range Labels {
		probs[l] = formatting.Round(exps[i]/sum, 3)
		if probs[l] > probs[label] {
			label = l
		}
	}

	slices.SortStableFunc(ts, func(a, b term) int {
		return cmp.Compare(math.Abs(b.contribution), math.Abs(a.contribution))
	})
	features := make([]Feature, len(ts))
	for i, t := range ts {
		features[i] = t.Feature
	}

	return Assessment{
		Score:             score,
		Label:             label,
		Probabilities:     probs,
		ImportantFeatures: features,
		Explanation:       Explanation,
		IsSimulation:      true,
	}
}
