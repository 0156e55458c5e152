package main

import (
	"github.com/spf13/cobra"

	"github.com/enerscan/resload/internal/config"
	"github.com/enerscan/resload/internal/domain/series"
)

func newValidateCmd() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a region's series and report integrity findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			loader, err := cfg.NewLoader()
			if err != nil {
				return err
			}

			store, err := loader.LoadRegion(region)
			if err != nil {
				return err
			}

			years := store.Years()
			cmd.Printf("region %s: OK\n", store.Region)
			cmd.Printf("years: %v\n", years)
			cmd.Printf("periods per year: %d\n", series.PeriodsPerYear)
			cmd.Printf("technologies: ")
			for i, tech := range series.Technologies() {
				if i > 0 {
					cmd.Printf(", ")
				}
				cmd.Printf("%s", tech)
			}
			cmd.Printf("\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region identifier (data subdirectory)")
	cmd.MarkFlagRequired("region")

	return cmd
}
