package main

import (
	"fmt"
	"os"
	"sort"

	"aasaasi/config"
	"aasaasi/db"
	"aasaasi/internal/logger"
	"aasaasi/store"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the static JSON dataset into MongoDB",
	Long: "seed reads every content collection from a data directory of JSON files " +
		"(the same layout the static backend serves) and writes it into MongoDB.",
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().String("config", "", "Path to a YAML config file (environment variables still apply)")
	rootCmd.Flags().String("data-dir", "", "Directory holding the JSON files (overrides DATA_DIR)")
	rootCmd.Flags().Bool("drop", false, "Empty each collection before importing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataSource.DataDir = dir
	}
	if cfg.DataSource.MongoURI == "" {
		return fmt.Errorf("MONGO_URL is required to seed")
	}
	drop, _ := cmd.Flags().GetBool("drop")

	logr, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		return err
	}
	defer logr.Sync()

	ds, err := store.LoadDataset(cfg.DataSource.DataDir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, database, err := db.ConnectMongoDB(ctx, cfg.DataSource)
	if err != nil {
		return err
	}
	ms := store.NewMongoStore(client, database)
	defer ms.Close(ctx)

	report, err := ms.Import(ctx, ds, drop)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logr.Info("Imported collection", "collection", name, "documents", report[name])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d collections into %s\n", len(report), db.ResolveDBName(cfg.DataSource))
	return nil
}
