package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enerscan/resload/internal/app"
	"github.com/enerscan/resload/internal/config"
	"github.com/enerscan/resload/internal/domain/residual"
	"github.com/enerscan/resload/internal/domain/series"
	"github.com/enerscan/resload/internal/report"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		region       string
		yearsSpec    string
		solar        float64
		windOffshore float64
		windOnshore  float64
		topN         int
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the scarcity analysis for one region",
		Long: `Load the region's series, net out the given renewable capacities over
the selected years, and classify the top-N load scarcity hours against
the residual-load ranking. Writes duration-curve and scarcity artifacts
into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}

			years, err := parseYears(yearsSpec)
			if err != nil {
				return fmt.Errorf("parse --years: %w", err)
			}

			loader, err := cfg.NewLoader()
			if err != nil {
				return err
			}
			store, err := loader.LoadRegion(region)
			if err != nil {
				return err
			}

			analyzer := app.NewAnalyzer(store, nil)
			outcome, err := analyzer.Analyze(app.Request{
				Years: years,
				Capacities: residual.Capacity{
					series.Solar:        solar,
					series.WindOffshore: windOffshore,
					series.WindOnshore:  windOnshore,
				},
				TopN: topN,
			})
			if err != nil {
				return err
			}

			curvesPath, scarcityPath, err := report.NewWriter(cfg.OutDir).WriteOutcome(outcome)
			if err != nil {
				return err
			}

			printSummary(cmd, outcome, curvesPath, scarcityPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region identifier (data subdirectory)")
	cmd.Flags().StringVar(&yearsSpec, "years", "", "weather/load years, e.g. 2012-2016 or 2012,2014,2016")
	cmd.Flags().Float64Var(&solar, "solar", 0, "installed solar capacity in GW")
	cmd.Flags().Float64Var(&windOffshore, "wind-offshore", 0, "installed offshore wind capacity in GW")
	cmd.Flags().Float64Var(&windOnshore, "wind-onshore", 0, "installed onshore wind capacity in GW")
	cmd.Flags().IntVar(&topN, "top", 20, "number of scarcity hours to rank")
	cmd.Flags().StringVar(&outDir, "out", "", "artifact directory (overrides config)")
	cmd.MarkFlagRequired("region")
	cmd.MarkFlagRequired("years")

	return cmd
}

func printSummary(cmd *cobra.Command, outcome *app.Outcome, curvesPath, scarcityPath string) {
	confirmed := outcome.Scarcity.ConfirmedCount()
	cmd.Printf("region %s, %d years, top %d scarcity hours\n",
		outcome.Region, len(outcome.Request.Years), outcome.Scarcity.N)
	cmd.Printf("confirmed by residual load: %d/%d (%.0f%%)\n",
		confirmed, outcome.Scarcity.N, 100*float64(confirmed)/float64(outcome.Scarcity.N))
	for _, p := range outcome.Points {
		marker := "contradicted"
		if p.Confirmed {
			marker = "confirmed"
		}
		cmd.Printf("  hour %6d  load %8.3f GW  residual %8.3f GW  %s\n",
			p.Index, p.Load, p.Residual, marker)
	}
	cmd.Printf("curves:   %s\n", curvesPath)
	cmd.Printf("scarcity: %s\n", scarcityPath)
}

// parseYears accepts either an inclusive range ("2012-2016") or a comma
// separated list ("2012,2014"). Order is preserved for lists; ranges expand
// ascending.
func parseYears(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("no years given")
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("bad range start %q", parts[0])
		}
		last, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("bad range end %q", parts[1])
		}
		if last < first {
			return nil, fmt.Errorf("range %d-%d is reversed", first, last)
		}
		years := make([]int, 0, last-first+1)
		for y := first; y <= last; y++ {
			years = append(years, y)
		}
		return years, nil
	}

	fields := strings.Split(spec, ",")
	years := make([]int, 0, len(fields))
	for _, f := range fields {
		y, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad year %q", f)
		}
		years = append(years, y)
	}
	return years, nil
}
