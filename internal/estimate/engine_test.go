package estimate

import (
	"encoding/json"
	"math"
	"testing"
)

func exampleInput() Input {
	return Input{
		Name:            "Asha",
		Location:        "Pune",
		RooftopArea:     100,
		RoofMaterial:    "RCC",
		Rainfall:        800,
		SoilType:        "Clay",
		HouseholdDemand: 4,
	}
}

func TestEstimateExample(t *testing.T) {
	res := Estimate(exampleInput())

	if res.RawEstimateLitres != 64000 {
		t.Errorf("RawEstimateLitres = %v, want 64000", res.RawEstimateLitres)
	}
	if res.AnnualHarvestLitres != 64000 {
		t.Errorf("AnnualHarvestLitres = %d, want 64000", res.AnnualHarvestLitres)
	}
	if res.MonthlyAverageLitres != 5333 {
		t.Errorf("MonthlyAverageLitres = %d, want 5333", res.MonthlyAverageLitres)
	}
	if res.SuggestedTankLitres != 3000 {
		t.Errorf("SuggestedTankLitres = %d, want 3000", res.SuggestedTankLitres)
	}
	if res.CostEstimate != 13500 {
		t.Errorf("CostEstimate = %d, want 13500", res.CostEstimate)
	}
	if res.SustainabilityRating != RatingGreen {
		t.Errorf("SustainabilityRating = %s, want %s", res.SustainabilityRating, RatingGreen)
	}
	if res.RechargeStructure != StructurePitFilter {
		t.Errorf("RechargeStructure = %s, want %s", res.RechargeStructure, StructurePitFilter)
	}
	if res.Demand.Unit != DemandPeople || res.Demand.People != 4 || res.Demand.LitresPerDay != 540 {
		t.Errorf("Demand = %+v, want 4 people at 540 L/day", res.Demand)
	}
}

func TestAnnualHarvestClamp(t *testing.T) {
	tests := []struct {
		name     string
		area     float64
		rainfall float64
		want     int
	}{
		{"tiny roof clamps to minimum", 1, 1, MinAnnualHarvestLitres},
		{"exactly minimum", 100, 187.5, 15000},
		{"just above minimum", 100, 187.5125, 15001},
		{"mid range untouched", 100, 800, 64000},
		{"exactly maximum", 100, 1500, 120000},
		{"huge roof clamps to maximum", 1000, 3000, MaxAnnualHarvestLitres},
		{"infinite product clamps to maximum", math.MaxFloat64, 10, MaxAnnualHarvestLitres},
		{"negative product clamps to minimum", -50, 800, MinAnnualHarvestLitres},
		{"NaN clamps to minimum", math.NaN(), 800, MinAnnualHarvestLitres},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualHarvest(tt.area, tt.rainfall)
			if got != tt.want {
				t.Errorf("AnnualHarvest(%v, %v) = %d, want %d", tt.area, tt.rainfall, got, tt.want)
			}
			if got < MinAnnualHarvestLitres || got > MaxAnnualHarvestLitres {
				t.Errorf("AnnualHarvest(%v, %v) = %d outside clamp range", tt.area, tt.rainfall, got)
			}
		})
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	in := exampleInput()
	in.SoilType = "Sandy Loam"
	in.HouseholdDemand = 650

	first := Estimate(in)
	for i := 0; i < 5; i++ {
		if again := Estimate(in); again != first {
			t.Fatalf("Estimate() run %d = %+v, want %+v", i, again, first)
		}
	}
}

func TestMonthlyDistribution(t *testing.T) {
	for _, annual := range []int{15000, 31337, 60000, 64000, 99999, 120000} {
		res := Default().distribute(annual)

		sum := 0
		for i, v := range res {
			if v < 0 {
				t.Errorf("annual %d: month %d = %d, want >= 0", annual, i, v)
			}
			sum += v
		}
		// each month rounds by at most half a litre
		if diff := sum - annual; diff < -6 || diff > 6 {
			t.Errorf("annual %d: distribution sums to %d", annual, sum)
		}
	}

	res := Estimate(exampleInput())
	if len(res.MonthlyDistributionLitres) != 12 {
		t.Fatalf("distribution has %d entries, want 12", len(res.MonthlyDistributionLitres))
	}
	// July peak for the monsoon profile: 64000 * 0.20
	if res.MonthlyDistributionLitres[6] != 12800 {
		t.Errorf("July = %d, want 12800", res.MonthlyDistributionLitres[6])
	}
	if res.MonthlyDistributionLitres[11] != 640 {
		t.Errorf("December = %d, want 640", res.MonthlyDistributionLitres[11])
	}
}

func TestClassifySoil(t *testing.T) {
	tests := []struct {
		soil string
		want RechargeStructure
	}{
		{"Sandy", StructureTrench},
		{"Sandy Loam", StructureTrench},
		{"sandy clay", StructureTrench},
		{"Clay", StructurePitFilter},
		{"Heavy Clay", StructurePitFilter},
		{"CLAY", StructurePitFilter},
		{"Loamy", StructureWell},
		{"", StructureWell},
		{"laterite", StructureWell},
	}

	for _, tt := range tests {
		t.Run(tt.soil, func(t *testing.T) {
			if got := ClassifySoil(tt.soil); got != tt.want {
				t.Errorf("ClassifySoil(%q) = %s, want %s", tt.soil, got, tt.want)
			}
		})
	}
}

func TestRateBoundaries(t *testing.T) {
	tests := []struct {
		annual int
		want   Rating
	}{
		{120000, RatingGreen},
		{60001, RatingGreen},
		{60000, RatingAmber},
		{30001, RatingAmber},
		{30000, RatingRed},
		{15000, RatingRed},
	}

	for _, tt := range tests {
		if got := Rate(tt.annual); got != tt.want {
			t.Errorf("Rate(%d) = %s, want %s", tt.annual, got, tt.want)
		}
	}
}

func TestSuggestTank(t *testing.T) {
	tests := []struct {
		monthly int
		want    int
	}{
		{5333, 3000},
		{1250, 1000},
		{10000, 6000},
		{417, 500},
		{416, FallbackTankLitres},
		{0, FallbackTankLitres},
		{100, FallbackTankLitres},
	}

	for _, tt := range tests {
		got := SuggestTank(tt.monthly)
		if got != tt.want {
			t.Errorf("SuggestTank(%d) = %d, want %d", tt.monthly, got, tt.want)
		}
		if got%TankRoundingLitres != 0 {
			t.Errorf("SuggestTank(%d) = %d, not a multiple of %d", tt.monthly, got, TankRoundingLitres)
		}
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		tank int
		want int
	}{
		{3000, 13500},
		{5000, 17000},
		{1000, 10000},
		{6000, 19000},
	}

	for _, tt := range tests {
		if got := Cost(tt.tank); got != tt.want {
			t.Errorf("Cost(%d) = %d, want %d", tt.tank, got, tt.want)
		}
	}
}

func TestNormalizeDemand(t *testing.T) {
	tests := []struct {
		value      int
		wantUnit   DemandUnit
		wantLitres int
	}{
		{1, DemandPeople, 135},
		{4, DemandPeople, 540},
		{12, DemandPeople, 1620},
		{13, DemandLitresPerDay, 13},
		{500, DemandLitresPerDay, 500},
	}

	for _, tt := range tests {
		d := NormalizeDemand(tt.value)
		if d.Unit != tt.wantUnit || d.LitresPerDay != tt.wantLitres {
			t.Errorf("NormalizeDemand(%d) = %+v, want %s at %d L/day", tt.value, d, tt.wantUnit, tt.wantLitres)
		}
	}
}

func TestDemandDoesNotAffectHarvest(t *testing.T) {
	a := exampleInput()
	b := exampleInput()
	b.HouseholdDemand = 900

	ra, rb := Estimate(a), Estimate(b)
	if ra.AnnualHarvestLitres != rb.AnnualHarvestLitres || ra.SuggestedTankLitres != rb.SuggestedTankLitres ||
		ra.CostEstimate != rb.CostEstimate {
		t.Errorf("household demand changed the harvest: %+v vs %+v", ra, rb)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{2.5, 3},
		{2.4999, 2},
		{6.3996, 6},
		{26.8, 27},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEstimateKeepsRawFinite(t *testing.T) {
	tests := []struct {
		name    string
		area    float64
		rain    float64
		wantRaw float64
	}{
		{"overflow", 1e200, 1e200, math.MaxFloat64},
		{"negative overflow", -1e200, 1e200, -math.MaxFloat64},
		{"nan", math.NaN(), 800, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := exampleInput()
			in.RooftopArea, in.Rainfall = tt.area, tt.rain
			res := Estimate(in)
			if res.RawEstimateLitres != tt.wantRaw {
				t.Errorf("RawEstimateLitres = %v, want %v", res.RawEstimateLitres, tt.wantRaw)
			}
			if _, err := json.Marshal(res); err != nil {
				t.Errorf("result not encodable: %v", err)
			}
		})
	}
}
