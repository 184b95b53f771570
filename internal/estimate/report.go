package estimate

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatLitres renders a volume with thousands separators, e.g. "64,000 L".
func FormatLitres(v int) string {
	return printer.Sprintf("%d L", v)
}

// FormatRupees renders an amount in rupees, e.g. "₹13,500".
func FormatRupees(v int) string {
	return printer.Sprintf("₹%d", v)
}

// FormatDemand describes how a demand number was read.
func FormatDemand(d Demand) string {
	if d.Unit == DemandPeople {
		return printer.Sprintf("%d people (~%d L/day)", d.People, d.LitresPerDay)
	}
	return printer.Sprintf("%d L/day", d.LitresPerDay)
}

// Display holds the user-facing strings of a result.
type Display struct {
	AnnualHarvest     string `json:"annualHarvest"`
	MonthlyAverage    string `json:"monthlyAverage"`
	SuggestedTank     string `json:"suggestedTank"`
	RechargeStructure string `json:"rechargeStructure"`
	CostEstimate      string `json:"costEstimate"`
	Demand            string `json:"demand"`
}

// Breakdown lists the figures behind the harvest calculation.
type Breakdown struct {
	RooftopArea       float64 `json:"rooftopArea"`
	RainfallMM        float64 `json:"rainfallMm"`
	RunoffCoefficient string  `json:"runoffCoefficient"`
	TankFraction      string  `json:"tankFraction"`
	AnnualHarvest     string  `json:"annualHarvest"`
	MonthlyAverage    string  `json:"monthlyAverage"`
	SuggestedTank     string  `json:"suggestedTank"`
	SetupCost         string  `json:"setupCost"`
	Sustainability    Rating  `json:"sustainability"`
}

// MonthlyPoint is one bar of the monthly availability chart.
type MonthlyPoint struct {
	Month  string `json:"month"`
	Litres int    `json:"litres"`
}

// RoadmapStep is one stage of the implementation plan.
type RoadmapStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Roadmap is the fixed implementation plan shown with every result.
var Roadmap = []RoadmapStep{
	{
		Step:        1,
		Title:       "Site Assessment & Planning",
		Description: "Conduct detailed soil permeability tests and finalize locations for recharge structures. Obtain necessary permits.",
	},
	{
		Step:        2,
		Title:       "Infrastructure Installation",
		Description: "Install gutters, first-flush diverters, filtration systems, and storage/recharge infrastructure.",
	},
	{
		Step:        3,
		Title:       "System Testing & Calibration",
		Description: "Test the complete system during initial rains and make necessary adjustments for optimal performance.",
	},
	{
		Step:        4,
		Title:       "Maintenance & Monitoring",
		Description: "Establish regular cleaning schedules and monitoring protocols to ensure long-term system efficiency.",
	},
}

// Report is everything the results screen renders for one assessment.
type Report struct {
	Input     Input          `json:"input"`
	Result    Result         `json:"result"`
	Display   Display        `json:"display"`
	Breakdown Breakdown      `json:"breakdown"`
	Chart     []MonthlyPoint `json:"chart"`
	Roadmap   []RoadmapStep  `json:"roadmap"`
}

// NewReport assembles the results view for an input and its result.
func (e *Engine) NewReport(in Input, res Result) Report {
	labels := e.profile.Labels()
	chart := make([]MonthlyPoint, 0, len(labels))
	for i, label := range labels {
		chart = append(chart, MonthlyPoint{Month: label, Litres: res.MonthlyDistributionLitres[i]})
	}

	cost := FormatRupees(res.CostEstimate)
	return Report{
		Input:  in,
		Result: res,
		Display: Display{
			AnnualHarvest:     FormatLitres(res.AnnualHarvestLitres),
			MonthlyAverage:    FormatLitres(res.MonthlyAverageLitres) + "/month",
			SuggestedTank:     FormatLitres(res.SuggestedTankLitres),
			RechargeStructure: res.RechargeStructure.Description(),
			CostEstimate:      cost,
			Demand:            FormatDemand(res.Demand),
		},
		Breakdown: Breakdown{
			RooftopArea:       in.RooftopArea,
			RainfallMM:        in.Rainfall,
			RunoffCoefficient: fmt.Sprintf("%.1f (%.0f%%)", RunoffCoefficient, RunoffCoefficient*100),
			TankFraction:      fmt.Sprintf("%.0f%%", TankFraction*100),
			AnnualHarvest:     FormatLitres(res.AnnualHarvestLitres),
			MonthlyAverage:    FormatLitres(res.MonthlyAverageLitres),
			SuggestedTank:     FormatLitres(res.SuggestedTankLitres),
			SetupCost:         cost,
			Sustainability:    res.SustainabilityRating,
		},
		Chart:   chart,
		Roadmap: Roadmap,
	}
}
