package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neersanchay",
		Short: "Rooftop rainwater harvesting assessment service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe("")
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(estimateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the assessment HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")
	return cmd
}

func estimateCmd() *cobra.Command {
	var (
		opts    estimateOptions
		profile string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print a harvest estimate for one site without starting the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.OutOrStdout(), opts, profile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Name, "name", "", "site or owner name")
	f.StringVar(&opts.Location, "location", "", "place name or \"lat, lon\"")
	f.Float64Var(&opts.RooftopArea, "area", 0, "rooftop area in m²")
	f.StringVar(&opts.RoofMaterial, "roof", "RCC", "roof material (RCC, Tiles, Metal Sheet)")
	f.Float64Var(&opts.Rainfall, "rainfall", 0, "annual rainfall in mm")
	f.StringVar(&opts.SoilType, "soil", "Loamy", "soil type")
	f.IntVar(&opts.HouseholdDemand, "demand", 4, "people (≤12) or litres per day")
	f.StringVar(&opts.Format, "format", "text", "output format: text or json")
	f.StringVar(&profile, "profile", "", "seasonal profile YAML file")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}
