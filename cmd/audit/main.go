// Package main provides the operational CLI over the decision ledger:
// manual settlement passes, PnL summaries and ledger inspection.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/database"
	"github.com/yourusername/goleador/internal/feed"
	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/logger"
	"github.com/yourusername/goleador/internal/service"
	"github.com/yourusername/goleador/internal/settle"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repo       ledger.Repository
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(settleCmd)
	rootCmd.AddCommand(pnlCmd)
	rootCmd.AddCommand(pendingCmd)
}

var rootCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and settle the decision ledger",
	Long:  `Runs settlement passes against completed fixtures, prints cumulative PnL and lists pending ledger entries.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return fmt.Errorf("failed to set up dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close(context.Background())
		}
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle pending entries against completed fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		feedLog := log.New(os.Stdout, "feed: ", log.LstdFlags)
		httpClient := feed.NewRateLimitedHTTPClient(feed.DefaultHTTPClientConfig(), feedLog)
		defer httpClient.Close()
		source := feed.NewCSVSource(cfg.Feed, httpClient, appLog)

		audit := service.NewAuditService(repo, service.NewFeedResultSource(source), appLog)
		report, summary, err := audit.RunCycle(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Examined: %d\n", report.Examined)
		fmt.Printf("Settled:  %d (W/L/P %d/%d/%d)\n", report.Settled, report.Wins, report.Losses, report.Pushes)
		fmt.Printf("Skipped:  %d\n", report.Skipped)
		fmt.Printf("PnL:      %s\n", summary.String())
		return nil
	},
}

var pnlCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Print the cumulative PnL summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		summary, err := settle.NewAggregator(repo).Summarize(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Settled entries: %d\n", summary.Settled)
		fmt.Printf("Record (W/L/P):  %d/%d/%d\n", summary.Wins, summary.Losses, summary.Pushes)
		fmt.Printf("Total staked:    %.2f\n", summary.TotalStaked)
		fmt.Printf("Total profit:    %.2f\n", summary.TotalProfit)
		fmt.Printf("ROI:             %.2f%%\n", summary.ROI)
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List ledger entries awaiting settlement",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		entries, err := repo.Pending(ctx)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No pending entries.")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s  stake=%.2f%%  ev=%.3f\n", entry.String(), entry.Stake, entry.ExpectedValue)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger("warn")

	db, err = database.NewDB(context.Background(), &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repo = ledger.NewPostgresRepository(db)

	return nil
}
