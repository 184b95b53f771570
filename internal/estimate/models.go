package estimate

import "strings"

// RoofMaterial is the roof surface the harvest is collected from.
type RoofMaterial string

const (
	RoofRCC        RoofMaterial = "RCC"
	RoofTiles      RoofMaterial = "Tiles"
	RoofMetalSheet RoofMaterial = "Metal Sheet"
)

// RoofMaterials lists the accepted materials in form order.
var RoofMaterials = []RoofMaterial{RoofRCC, RoofTiles, RoofMetalSheet}

// ParseRoofMaterial matches s against the known materials ignoring case and
// surrounding whitespace.
func ParseRoofMaterial(s string) (RoofMaterial, bool) {
	s = strings.TrimSpace(s)
	for _, m := range RoofMaterials {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

// Soil types offered by the assessment form. Any other text is accepted.
const (
	SoilClay  = "Clay"
	SoilSandy = "Sandy"
	SoilLoamy = "Loamy"
)

// RechargeStructure is the groundwater recharge installation recommended
// for a soil category.
type RechargeStructure string

const (
	StructureTrench    RechargeStructure = "Trench"
	StructurePitFilter RechargeStructure = "Pit+filter"
	StructureWell      RechargeStructure = "Well"
)

// Description returns the sized installation shown to the user.
func (s RechargeStructure) Description() string {
	switch s {
	case StructureTrench:
		return "Recharge Trench (0.6×0.6×5 m)"
	case StructurePitFilter:
		return "Recharge Pit (2×2×2 m) with filter media"
	default:
		return "Recharge Well (1 m dia × 6 m)"
	}
}

// Rating is the three-tier sustainability label.
type Rating string

const (
	RatingGreen Rating = "Green"
	RatingAmber Rating = "Amber"
	RatingRed   Rating = "Red"
)

// Input is one submission of the assessment form.
type Input struct {
	Name            string  `json:"name"`
	Location        string  `json:"location" validate:"required"`
	RooftopArea     float64 `json:"rooftopArea" validate:"required,gt=0"`
	RoofMaterial    string  `json:"roofMaterial" validate:"required,roof_material"`
	Rainfall        float64 `json:"rainfall" validate:"required,gt=0"`
	SoilType        string  `json:"soilType" validate:"required"`
	HouseholdDemand int     `json:"householdDemand" validate:"required,gt=0"`
}

// Normalize trims text fields and canonicalizes the roof material.
// Unknown materials are left as typed so validation can reject them.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.SoilType = strings.TrimSpace(in.SoilType)
	in.RoofMaterial = strings.TrimSpace(in.RoofMaterial)
	if m, ok := ParseRoofMaterial(in.RoofMaterial); ok {
		in.RoofMaterial = string(m)
	}
	return in
}

// DemandUnit says how a household demand number was interpreted.
type DemandUnit string

const (
	DemandPeople       DemandUnit = "people"
	DemandLitresPerDay DemandUnit = "litres_per_day"
)

// Demand is the normalized household demand. It is informational only and
// never feeds the harvest estimate.
type Demand struct {
	Value        int        `json:"value"`
	Unit         DemandUnit `json:"unit"`
	People       int        `json:"people,omitempty"`
	LitresPerDay int        `json:"litresPerDay"`
}

// Result is derived from exactly one Input and never mutated afterwards.
type Result struct {
	RawEstimateLitres         float64           `json:"rawEstimateLitres"`
	AnnualHarvestLitres       int               `json:"annualHarvestLitres"`
	MonthlyAverageLitres      int               `json:"monthlyAverageLitres"`
	SuggestedTankLitres       int               `json:"suggestedTankLitres"`
	RechargeStructure         RechargeStructure `json:"rechargeStructure"`
	CostEstimate              int               `json:"costEstimate"`
	SustainabilityRating      Rating            `json:"sustainabilityRating"`
	MonthlyDistributionLitres [12]int           `json:"monthlyDistributionLitres"`
	Demand                    Demand            `json:"demand"`
}
