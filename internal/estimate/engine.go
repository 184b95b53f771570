package estimate

import (
	"math"

	"github.com/i474232898/neersanchay/internal/common"
)

const (
	// RunoffCoefficient is the fraction of rainfall captured from the roof.
	RunoffCoefficient = 0.8

	MinAnnualHarvestLitres = 15000
	MaxAnnualHarvestLitres = 120000

	// TankFraction is the share of an average month the tank should hold.
	TankFraction       = 0.6
	TankRoundingLitres = 500
	FallbackTankLitres = 5000

	CostPerTankLitre   = 1.8
	BaseInstallCost    = 8000
	CostRoundingRupees = 500

	GreenThresholdLitres = 60000
	AmberThresholdLitres = 30000

	// Household demand at or below PeopleThreshold is a head count.
	PeopleThreshold       = 12
	LitresPerPersonPerDay = 135
)

// Engine computes assessment results against a seasonal profile.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	profile SeasonalProfile
}

// NewEngine returns an Engine distributing the annual harvest with profile.
// The profile is assumed to be valid; see SeasonalProfile.Validate.
func NewEngine(profile SeasonalProfile) *Engine {
	return &Engine{profile: profile}
}

var defaultEngine = NewEngine(DefaultProfile())

// Default returns the engine using the built-in monsoon profile.
func Default() *Engine {
	return defaultEngine
}

// Estimate runs the default engine.
func Estimate(in Input) Result {
	return defaultEngine.Estimate(in)
}

// Profile returns the seasonal profile the engine distributes with.
func (e *Engine) Profile() SeasonalProfile {
	return e.profile
}

// Estimate derives the result for in. It is total over any input: values
// outside the expected ranges are clamped, not rejected.
func (e *Engine) Estimate(in Input) Result {
	raw := finite(in.RooftopArea * in.Rainfall * RunoffCoefficient)
	annual := AnnualHarvest(in.RooftopArea, in.Rainfall)
	monthly := roundHalfUp(float64(annual) / 12)
	tank := SuggestTank(monthly)

	return Result{
		RawEstimateLitres:         raw,
		AnnualHarvestLitres:       annual,
		MonthlyAverageLitres:      monthly,
		SuggestedTankLitres:       tank,
		RechargeStructure:         ClassifySoil(in.SoilType),
		CostEstimate:              Cost(tank),
		SustainabilityRating:      Rate(annual),
		MonthlyDistributionLitres: e.distribute(annual),
		Demand:                    NormalizeDemand(in.HouseholdDemand),
	}
}

func (e *Engine) distribute(annual int) [12]int {
	var out [12]int
	for i, w := range e.profile.Weights() {
		out[i] = roundHalfUp(float64(annual) * w)
	}
	return out
}

// AnnualHarvest returns the clamped yearly harvest in litres.
func AnnualHarvest(rooftopArea, rainfall float64) int {
	raw := math.Floor(rooftopArea*rainfall*RunoffCoefficient + 0.5)
	if math.IsNaN(raw) || raw < MinAnnualHarvestLitres {
		return MinAnnualHarvestLitres
	}
	if raw > MaxAnnualHarvestLitres {
		return MaxAnnualHarvestLitres
	}
	return int(raw)
}

// SuggestTank sizes storage from the monthly average, in 500 L steps.
func SuggestTank(monthlyLitres int) int {
	tank := roundHalfUp(float64(monthlyLitres)*TankFraction/TankRoundingLitres) * TankRoundingLitres
	if tank == 0 {
		return FallbackTankLitres
	}
	return tank
}

// Cost is the approximate setup cost in rupees for a tank size.
func Cost(tankLitres int) int {
	return roundHalfUp((float64(tankLitres)*CostPerTankLitre+BaseInstallCost)/CostRoundingRupees) * CostRoundingRupees
}

// ClassifySoil maps free-text soil descriptions to a recharge structure.
// Sandy wins over clay when both appear; anything else, loamy included,
// gets a well.
func ClassifySoil(soilType string) RechargeStructure {
	switch {
	case common.ContainsAnyFold(soilType, "sandy"):
		return StructureTrench
	case common.ContainsAnyFold(soilType, "clay"):
		return StructurePitFilter
	default:
		return StructureWell
	}
}

// Rate grades the annual harvest.
func Rate(annualLitres int) Rating {
	switch {
	case annualLitres > GreenThresholdLitres:
		return RatingGreen
	case annualLitres > AmberThresholdLitres:
		return RatingAmber
	default:
		return RatingRed
	}
}

// NormalizeDemand interprets a household demand number. Values up to
// PeopleThreshold are people; larger values are litres per day.
func NormalizeDemand(value int) Demand {
	if value <= PeopleThreshold {
		return Demand{
			Value:        value,
			Unit:         DemandPeople,
			People:       value,
			LitresPerDay: value * LitresPerPersonPerDay,
		}
	}
	return Demand{
		Value:        value,
		Unit:         DemandLitresPerDay,
		LitresPerDay: value,
	}
}

// finite keeps x encodable: NaN becomes 0 and infinities are capped at
// the largest float64.
func finite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}
	return x
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
