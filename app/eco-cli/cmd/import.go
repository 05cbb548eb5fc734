package cmd

import (
	"fmt"

	"ecoRecommend/business/catalog"
	"ecoRecommend/business/ecoscore"
	psqlRepo "ecoRecommend/internal/repository/postgres"
	"ecoRecommend/pkg/config"
	"ecoRecommend/pkg/database"
	"ecoRecommend/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	importFile       string
	importBatchSize  int
	importNoFallback bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a product dataset into the catalog",
	Long: `Load a .csv or .json product dataset into the products table.

Rows without a title or a positive price are skipped. Eco-scores come from the
dataset's eco-score column, then the mean of the model score columns, then the
keyword table unless --no-keyword-fallback is set. Existing rows are left alone.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the dataset (.csv or .json)")
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", catalog.DefaultBatchSize, "Rows per insert statement")
	importCmd.Flags().BoolVar(&importNoFallback, "no-keyword-fallback", false, "Leave products without a dataset score unscored")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var scorer ecoscore.Provider
	if !importNoFallback {
		scorer = ecoscore.NewKeywordProvider(nil)
	}

	svc := catalog.NewService(psqlRepo.NewProductRepository(db), scorer, importBatchSize)

	n, err := svc.Import(cmd.Context(), importFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully loaded %d products into database\n", n)
	return nil
}
