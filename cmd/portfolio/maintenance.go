package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/setup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(deps *setup.Dependencies) error {
			logger.Log.Info("schema is up to date", "driver", cfg.Public.Storage.Driver)
			return nil
		})
	},
}

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Find and register image files that have no database row",
}

var orphansListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print orphaned file names, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(deps *setup.Dependencies) error {
			orphans, err := deps.Services.Reconcile.DetectOrphans(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range orphans {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var orphansMaterializeCmd = &cobra.Command{
	Use:   "materialize [filename...]",
	Short: "Create rows for the named orphans, or for all of them when none are named",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(deps *setup.Dependencies) error {
			filenames := args
			if len(filenames) == 0 {
				detected, err := deps.Services.Reconcile.DetectOrphans(cmd.Context())
				if err != nil {
					return err
				}
				filenames = detected
			}
			res, err := deps.Services.Reconcile.MaterializeOrphans(cmd.Context(), filenames)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d, skipped %d\n", res.Added, len(res.Skipped))
			return nil
		})
	},
}

var backupName string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backup archives",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a tar.gz of the database and assets and print its path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(deps *setup.Dependencies) error {
			artifact, err := deps.Services.Backup.Create(cmd.Context(), backupName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
			return nil
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var categoriesDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Create the standard category set, skipping names that exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(deps *setup.Dependencies) error {
			n, err := deps.Services.Category.CreateDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d categories\n", n)
			return nil
		})
	},
}

func init() {
	orphansCmd.AddCommand(orphansListCmd)
	orphansCmd.AddCommand(orphansMaterializeCmd)

	backupCreateCmd.Flags().StringVar(&backupName, "name", "", "archive file name, generated from the clock when empty")
	backupCmd.AddCommand(backupCreateCmd)

	categoriesCmd.AddCommand(categoriesDefaultsCmd)
}
