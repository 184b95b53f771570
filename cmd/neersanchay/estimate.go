package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/i474232898/neersanchay/internal/estimate"
)

type estimateOptions struct {
	estimate.Input
	Format string
}

func runEstimate(w io.Writer, opts estimateOptions, profileFile string) error {
	engine, err := loadEngine(profileFile)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	in := opts.Input.Normalize()
	if err := in.Validate(); err != nil {
		var verr *estimate.ValidationError
		if errors.As(err, &verr) {
			printFieldErrors(w, verr)
		}
		return err
	}

	rep := engine.NewReport(in, engine.Estimate(in))

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "text", "":
		printReport(w, rep)
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func printFieldErrors(w io.Writer, verr *estimate.ValidationError) {
	fmt.Fprintf(w, "ERRORS (%d):\n", len(verr.Fields))
	for _, f := range verr.Fields {
		fmt.Fprintf(w, "  %s: failed %q\n", f.Field, f.Rule)
	}
}

func printReport(w io.Writer, rep estimate.Report) {
	d := rep.Display
	fmt.Fprintln(w, "RAINWATER HARVESTING ESTIMATE")
	if rep.Input.Name != "" {
		fmt.Fprintf(w, "  Site:                %s\n", rep.Input.Name)
	}
	fmt.Fprintf(w, "  Annual harvest:      %s\n", d.AnnualHarvest)
	fmt.Fprintf(w, "  Monthly average:     %s\n", d.MonthlyAverage)
	fmt.Fprintf(w, "  Suggested tank:      %s\n", d.SuggestedTank)
	fmt.Fprintf(w, "  Recharge structure:  %s\n", d.RechargeStructure)
	fmt.Fprintf(w, "  Cost estimate:       %s\n", d.CostEstimate)
	fmt.Fprintf(w, "  Sustainability:      %s\n", rep.Result.SustainabilityRating)
	fmt.Fprintf(w, "  Household demand:    %s\n", d.Demand)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MONTHLY AVAILABILITY")
	for _, p := range rep.Chart {
		fmt.Fprintf(w, "  %s  %s\n", p.Month, estimate.FormatLitres(p.Litres))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CALCULATION")
	b := rep.Breakdown
	fmt.Fprintf(w, "  Rooftop area:        %g m²\n", b.RooftopArea)
	fmt.Fprintf(w, "  Rainfall:            %g mm\n", b.RainfallMM)
	fmt.Fprintf(w, "  Runoff coefficient:  %s\n", b.RunoffCoefficient)
	fmt.Fprintf(w, "  Tank fraction:       %s\n", b.TankFraction)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ROADMAP")
	for _, s := range rep.Roadmap {
		fmt.Fprintf(w, "  %d. %s\n     %s\n", s.Step, s.Title, s.Description)
	}
}
