// mdctl is the operator CLI for the master data console: seeding,
// backup, restore and health checks against the configured store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/configuration"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/kv"
)

type cliEnv struct {
	log      *logrus.Logger
	store    kv.Store
	datasets *services.Datasets
	merge    *services.MergeService
	recovery *services.RecoveryService
	template *services.TemplateService
}

func newEnv(ctx context.Context) (*cliEnv, error) {
	conf := configuration.Use()
	log := conf.Logger()

	store, err := kv.Open(ctx, kv.Options{
		Driver:      conf.Store.Driver,
		DataDir:     conf.Store.DataDir,
		RedisURL:    conf.Store.RedisURL,
		PostgresDSN: conf.Database.Opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	datasets, err := services.NewDatasets(store, log)
	if err != nil {
		return nil, err
	}
	merge := services.NewMergeService(datasets, eventbus.NewEventPublisher(log), log)
	return &cliEnv{
		log:      log,
		store:    store,
		datasets: datasets,
		merge:    merge,
		recovery: services.NewRecoveryService(datasets, store, log),
		template: services.NewTemplateService(merge),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mdctl",
		Short:         "Master data console operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSeedCmd(),
		newHealthCmd(),
		newExportCmd(),
		newImportCmd(),
		newTemplateCmd(),
		newClearCmd(),
	)
	return root
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reseed every dataset with its default content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			return env.recovery.RestoreDefaults(cmd.Context())
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report per-dataset store health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			health := env.recovery.Health(cmd.Context())
			names := make([]string, 0, len(health))
			for name := range health {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				report := health[name]
				status := "ok"
				switch {
				case !report.Present:
					status = "missing"
				case !report.Loadable:
					status = "corrupt"
				case !report.Valid:
					status = "invalid"
				}
				line := fmt.Sprintf("%-20s %s", name, status)
				if report.Error != "" {
					line += "  (" + report.Error + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full JSON backup of every dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := env.recovery.Export(cmd.Context())
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}
			return os.WriteFile(output, payload, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "master-data-backup.json", "backup file path, or - for stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Replace every dataset from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := env.recovery.Import(cmd.Context(), payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported backup from %s (%d domain groups, %d segments)\n",
				doc.ExportTimestamp.Format("2006-01-02 15:04:05"),
				len(doc.DomainGroups.DomainGroups), len(doc.IndustrySegments))
			return nil
		},
	}
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Load the bulk technology template through the merge engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			result, err := env.template.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"template loaded: %d groups created, %d merged, %d categories, %d sub-categories\n",
				result.Stats.CreatedGroups, result.Stats.MergedGroups,
				result.Stats.CreatedCategories, result.Stats.CreatedSubCategories)
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every dataset document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear without --yes")
			}
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			return env.recovery.ClearAll(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
