package main

import (
	"fmt"

	"github.com/hepsw/rfm/internal/manager"
	"github.com/hepsw/rfm/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSyncCmd())
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [locations...]",
		Short: "Reconcile every registered table so all replicas of each name converge on the newest content",
		Long: "Reconciles the tables at the given locations, or, when none are given, the locations " +
			"recorded by 'rfm register'. Every name shared by two or more tables is compared: the " +
			"replica with the newest verified content is copied to every out-of-date replica.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig(cmd)
			if err != nil {
				return err
			}

			locations := args
			if len(locations) == 0 {
				locations, err = loadRegistryOrEmpty(cfg.RegistryPath)
				if err != nil {
					return err
				}
			}
			if len(locations) == 0 {
				return fmt.Errorf("rfm: no table locations given and %q is empty; pass locations or run 'rfm register'", cfg.RegistryPath)
			}

			mgr := manager.New(manager.WithWorkers(cfg.Workers))
			for _, loc := range locations {
				if err := mgr.Register(loc); err != nil {
					return err
				}
			}

			report, err := mgr.Update(cmd.Context())
			if report != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "scheduled %d, succeeded %d, failed %d\n",
					report.Scheduled, report.Succeeded, len(report.Failures))
				for _, f := range report.Failures {
					printErr(f.Error())
				}
			}
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(newRegisterCmd())
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <location>",
		Short: "Append a table location to the sync registry manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig(cmd)
			if err != nil {
				return err
			}

			location := args[0]
			locations, err := loadRegistryOrEmpty(cfg.RegistryPath)
			if err != nil {
				return err
			}

			for _, l := range locations {
				if l == location {
					return fmt.Errorf("rfm: location %q is already registered", location)
				}
			}

			return registry.Save(cfg.RegistryPath, append(locations, location))
		},
	}
}

func loadRegistryOrEmpty(path string) ([]string, error) {
	locations, err := registry.Load(path)
	if err != nil {
		if isMissingFile(err) {
			return nil, nil
		}
		return nil, err
	}
	return locations, nil
}
