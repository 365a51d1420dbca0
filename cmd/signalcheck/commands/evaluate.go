package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/signalcheck/internal/runner"
)

// evaluateCmd runs the walk-forward evaluation
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "워크포워드 평가 실행",
	Long: `저장된 가격 데이터로 워크포워드 평가를 실행합니다.

각 기준일마다 5년 가격 패널을 만들고, 750/250일 스터디 구간별로
LSTM을 학습시켜 barebone 전략 3종과 비교합니다.

Flags:
  --base-dates  기준일 목록 (YYYY-MM-DD, 쉼표 구분, 필수)
  --save        결과를 DB에 저장 (기본: true)

Example:
  go run ./cmd/signalcheck evaluate --base-dates 2018-01-02
  go run ./cmd/signalcheck evaluate --base-dates 2018-01-02,2019-01-02,2020-01-02`,
	RunE: runEvaluate,
}

var (
	evaluateBaseDates string
	evaluateSave      bool
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateBaseDates, "base-dates", "", "기준일 목록 (YYYY-MM-DD, 쉼표 구분)")
	evaluateCmd.Flags().BoolVar(&evaluateSave, "save", true, "결과를 DB에 저장")

	evaluateCmd.MarkFlagRequired("base-dates")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	baseDates, err := parseBaseDates(evaluateBaseDates)
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	fmt.Println("=== signalcheck Walk-Forward Evaluation ===")
	fmt.Printf("📅 Base dates: %d\n", len(baseDates))
	fmt.Printf("🏛  Market: %s (top %d)\n", d.cfg.Eval.Market, d.cfg.Eval.TopN)
	fmt.Printf("🧠 LSTM: window=%d hidden=%d layers=%d epochs=%d\n\n",
		d.cfg.Eval.Window, d.cfg.Eval.HiddenSize, d.cfg.Eval.NumLayers, d.cfg.Eval.Epochs)

	report, err := d.engine.Run(cmd.Context(), runner.RunConfig{
		BaseDates:     baseDates,
		Market:        d.cfg.Eval.Market,
		TopN:          d.cfg.Eval.TopN,
		LookbackYears: d.cfg.Eval.LookbackYears,
	})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	printReport(report)

	if evaluateSave {
		if err := d.results.SaveReport(cmd.Context(), report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Printf("💾 Saved %d records\n", len(report.Records))
	}
	return nil
}

func parseBaseDates(s string) ([]time.Time, error) {
	var dates []time.Time
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("invalid base date %q: %w", part, err)
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no base dates given")
	}
	return dates, nil
}
