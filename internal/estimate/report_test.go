package estimate

import "testing"

func TestNewReport(t *testing.T) {
	in := exampleInput()
	e := Default()
	rep := e.NewReport(in, e.Estimate(in))

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"annual harvest", rep.Display.AnnualHarvest, "64,000 L"},
		{"monthly average", rep.Display.MonthlyAverage, "5,333 L/month"},
		{"tank", rep.Display.SuggestedTank, "3,000 L"},
		{"cost", rep.Display.CostEstimate, "₹13,500"},
		{"structure", rep.Display.RechargeStructure, "Recharge Pit (2×2×2 m) with filter media"},
		{"demand", rep.Display.Demand, "4 people (~540 L/day)"},
		{"runoff", rep.Breakdown.RunoffCoefficient, "0.8 (80%)"},
		{"tank fraction", rep.Breakdown.TankFraction, "60%"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if len(rep.Chart) != 12 || rep.Chart[6].Month != "Jul" || rep.Chart[6].Litres != 12800 {
		t.Errorf("chart = %+v, want 12 points with Jul = 12800", rep.Chart)
	}
	if len(rep.Roadmap) != 4 {
		t.Errorf("roadmap has %d steps, want 4", len(rep.Roadmap))
	}
}

func TestFormatDemandLitres(t *testing.T) {
	if got := FormatDemand(NormalizeDemand(1200)); got != "1,200 L/day" {
		t.Errorf("FormatDemand() = %q, want %q", got, "1,200 L/day")
	}
}
