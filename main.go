package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/conniexu444/parse-and-track-spending/internal/api"
	"github.com/conniexu444/parse-and-track-spending/internal/config"
	"github.com/conniexu444/parse-and-track-spending/internal/extractor"
	"github.com/conniexu444/parse-and-track-spending/internal/ingest"
	"github.com/conniexu444/parse-and-track-spending/internal/logger"
	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
	"github.com/conniexu444/parse-and-track-spending/internal/verify"
	"github.com/conniexu444/parse-and-track-spending/internal/writer"
)

const version = "1.0.0"

var (
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parse-and-track-spending",
	Short: "Parse card statements into normalized spending data",
	Long: `parse-and-track-spending converts American Express card statement PDFs
(or CSV transaction exports) into a normalized list of transactions with
cleaned merchant names, stable ids, and spend/credit totals.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log = logger.New(cfg.LogLevel)
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <statement.pdf|export.csv> [more files ...]",
	Short: "Parse statement files and write transactions as CSV",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		totals, _ := cmd.Flags().GetBool("totals")

		cleaner, err := parser.NewCleaner(cfg.MerchantMappings())
		if err != nil {
			return err
		}

		for _, inputPath := range args {
			outPath := output
			if outPath == "" || len(args) > 1 {
				outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".out.csv"
			}
			if err := processFile(inputPath, outPath, totals, cleaner); err != nil {
				return fmt.Errorf("processing %s: %w", inputPath, err)
			}
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement upload HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		cleaner, err := parser.NewCleaner(cfg.MerchantMappings())
		if err != nil {
			return err
		}

		app := api.NewApp(&api.Handler{Cleaner: cleaner, Log: log})
		log.Info().Str("addr", addr).Msg("starting server")
		return app.Listen(addr)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Parse fixture statements and check totals against expected values",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = os.Getenv("STATEMENTS_DIR")
		}
		if dir == "" {
			dir = cfg.Verify.StatementsDir
		}

		cleaner, err := parser.NewCleaner(cfg.MerchantMappings())
		if err != nil {
			return err
		}

		results, err := verify.Run(dir, cfg.Verify.Expected, cleaner, log)
		if err != nil {
			return err
		}
		printVerifyReport(results)

		s := verify.Summarize(results)
		if s.Failed > 0 || s.Errors > 0 {
			return fmt.Errorf("%d failed, %d errored", s.Failed, s.Errors)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("parse-and-track-spending v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	parseCmd.Flags().String("output", "", "Output CSV path (defaults to input name with .out.csv)")
	parseCmd.Flags().Bool("totals", true, "Append spend/credit/net totals rows to the CSV")
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	verifyCmd.Flags().String("dir", "", "Statements directory (overrides STATEMENTS_DIR and config)")

	rootCmd.AddCommand(parseCmd, serveCmd, verifyCmd, versionCmd)
}

func processFile(inputPath, outPath string, totals bool, cleaner *parser.MerchantCleaner) error {
	var (
		txns []models.Transaction
		err  error
	)

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".csv":
		txns, err = ingest.ReadFile(inputPath)
		if err != nil {
			return err
		}

	case ".pdf":
		pages, err := extractor.ExtractText(inputPath)
		if err != nil {
			return err
		}
		log.Debug().Int("pages", len(pages)).Str("file", inputPath).Msg("extracted text")

		issuer, err := parser.AutoDetect(pages)
		if err != nil {
			return err
		}

		p, err := parser.NewWithCleaner(issuer, cleaner)
		if err != nil {
			return err
		}
		txns, err = p.Parse(pages)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("expected a .pdf or .csv file, got %q", filepath.Ext(inputPath))
	}

	log.Info().Str("file", inputPath).Int("transactions", len(txns)).Msg("parsed")
	if len(txns) == 0 {
		log.Warn().Str("file", inputPath).Msg("no transactions found; the statement layout may not match")
	}

	w := &writer.CSVWriter{IncludeTotals: totals}
	if err = w.WriteToFile(outPath, txns); err != nil {
		return err
	}

	agg := parser.Aggregate(txns)
	fmt.Printf("%s: %d transaction(s) -> %s\n", inputPath, len(txns), outPath)
	fmt.Printf("  spent: %.2f  credits: %.2f  net: %.2f\n", agg.TotalSpent, agg.TotalCredits, agg.NetSpending)
	return nil
}

func printVerifyReport(results []verify.Result) {
	for _, r := range results {
		fmt.Printf("%-12s %s\n", r.Status, r.Document)
		fmt.Printf("  spent: %.2f  credits: %.2f  net: %.2f\n",
			r.Calculated.TotalSpent, r.Calculated.TotalCredits, r.Calculated.NetSpending)
		for _, m := range r.Mismatches {
			fmt.Printf("  - %s\n", m)
		}
		if r.Err != "" {
			fmt.Printf("  - %s\n", r.Err)
		}
	}

	s := verify.Summarize(results)
	fmt.Printf("\n%d passed, %d failed, %d need verification, %d errors\n",
		s.Passed, s.Failed, s.NoExpected, s.Errors)
}
