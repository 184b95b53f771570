package estimate

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// MonthWeight is one month's share of the annual harvest.
type MonthWeight struct {
	Month  string  `yaml:"month" json:"month"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// SeasonalProfile apportions an annual volume over twelve months.
type SeasonalProfile struct {
	Name   string        `yaml:"name" json:"name"`
	Months []MonthWeight `yaml:"months" json:"months"`
}

const weightSumTolerance = 0.001

var ErrInvalidProfile = errors.New("invalid seasonal profile")

// DefaultProfile is the monsoon-weighted profile peaking in July.
func DefaultProfile() SeasonalProfile {
	return SeasonalProfile{
		Name: "monsoon",
		Months: []MonthWeight{
			{Month: "Jan", Weight: 0.03},
			{Month: "Feb", Weight: 0.04},
			{Month: "Mar", Weight: 0.05},
			{Month: "Apr", Weight: 0.08},
			{Month: "May", Weight: 0.12},
			{Month: "Jun", Weight: 0.18},
			{Month: "Jul", Weight: 0.20},
			{Month: "Aug", Weight: 0.14},
			{Month: "Sep", Weight: 0.08},
			{Month: "Oct", Weight: 0.04},
			{Month: "Nov", Weight: 0.03},
			{Month: "Dec", Weight: 0.01},
		},
	}
}

// Validate checks there are twelve non-negative weights summing to one.
func (p SeasonalProfile) Validate() error {
	if len(p.Months) != 12 {
		return fmt.Errorf("%w: expected 12 months, got %d", ErrInvalidProfile, len(p.Months))
	}
	var sum float64
	for _, m := range p.Months {
		if m.Weight < 0 || math.IsNaN(m.Weight) {
			return fmt.Errorf("%w: month %q has weight %v", ErrInvalidProfile, m.Month, m.Weight)
		}
		sum += m.Weight
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.4f", ErrInvalidProfile, sum)
	}
	return nil
}

// Weights returns the monthly weights in calendar order.
func (p SeasonalProfile) Weights() [12]float64 {
	var w [12]float64
	for i := 0; i < len(p.Months) && i < 12; i++ {
		w[i] = p.Months[i].Weight
	}
	return w
}

// Labels returns the month labels in calendar order.
func (p SeasonalProfile) Labels() [12]string {
	var l [12]string
	for i := 0; i < len(p.Months) && i < 12; i++ {
		l[i] = p.Months[i].Month
	}
	return l
}

// ParseProfile decodes and validates a YAML profile.
func ParseProfile(data []byte) (SeasonalProfile, error) {
	var p SeasonalProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return SeasonalProfile{}, fmt.Errorf("decode seasonal profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return SeasonalProfile{}, err
	}
	return p, nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (SeasonalProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeasonalProfile{}, fmt.Errorf("read seasonal profile: %w", err)
	}
	return ParseProfile(data)
}
