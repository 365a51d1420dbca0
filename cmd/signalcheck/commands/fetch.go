package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetchCmd collects market data into the database
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "시장 데이터 수집",
	Long: `Naver Finance에서 시가총액 상위 유니버스와 일별 종가를 수집하여
DB에 저장합니다. evaluate 명령은 이 데이터만 읽습니다.

Flags:
  --date    유니버스 기준 날짜 (YYYY-MM-DD, 기본: 오늘)
  --market  시장 (KOSPI|KOSDAQ, 기본: 설정값)
  --top     시가총액 상위 종목 수 (기본: 설정값)

Example:
  go run ./cmd/signalcheck fetch --market KOSPI --top 200
  go run ./cmd/signalcheck fetch --date 2024-06-28`,
	RunE: runFetch,
}

var (
	fetchDate   string
	fetchMarket string
	fetchTop    int
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchDate, "date", "", "유니버스 기준 날짜 (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchMarket, "market", "", "시장 (KOSPI|KOSDAQ)")
	fetchCmd.Flags().IntVar(&fetchTop, "top", 0, "시가총액 상위 종목 수")
}

func runFetch(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	date := time.Now().Truncate(24 * time.Hour)
	if fetchDate != "" {
		date, err = time.Parse("2006-01-02", fetchDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}
	market := d.cfg.Eval.Market
	if fetchMarket != "" {
		market = fetchMarket
	}
	topN := d.cfg.Eval.TopN
	if fetchTop > 0 {
		topN = fetchTop
	}

	fmt.Printf("📡 Collecting %s top %d as of %s (lookback %d years)\n",
		market, topN, date.Format("2006-01-02"), d.cfg.Eval.LookbackYears)

	if err := d.collector.Collect(cmd.Context(), date, market, topN, d.cfg.Eval.LookbackYears); err != nil {
		return fmt.Errorf("collect market data: %w", err)
	}

	fmt.Println("✅ Collection completed")
	return nil
}
