package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dsn    string
	cutoff string
)

// 默认清理 2026-01-31 之前的旧数据
const defaultCutoff = "2026-01-31"

var rootCmd = &cobra.Command{
	Use:   "prune",
	Short: "删除截止日期之前的历史交易记录",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := time.Parse(tradingcal.DateLayout, cutoff); err != nil {
			return fmt.Errorf("invalid cutoff date %q, expected YYYY-MM-DD: %w", cutoff, err)
		}

		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		tradeRepo := repo.NewTradeRepo(db)
		deleted, err := tradeRepo.DeleteBefore(context.Background(), cutoff)
		if err != nil {
			return fmt.Errorf("prune trades: %w", err)
		}

		fmt.Printf("deleted %d trades dated before %s\n", deleted, cutoff)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&dsn, "dsn", "safe-tradex.db", "SQLite 数据库路径")
	rootCmd.Flags().StringVar(&cutoff, "cutoff", defaultCutoff, "删除该日期之前的记录，YYYY-MM-DD")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
