package commands

import (
	"fmt"
	"strings"

	"github.com/wonny/signalcheck/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Report Formatting
// 평가 결과 테이블 출력은 여기서만
// ═══════════════════════════════════════════════════════════

// printReport prints the ordered result records as a comparison table.
func printReport(report *contracts.Report) {
	fmt.Println("\n✅ Evaluation Completed")
	fmt.Println("=" + strings.Repeat("=", 78))

	for _, rec := range report.Records {
		fmt.Printf("\n📊 Base %s · Period %d  (train %s ~ %s, test %s ~ %s)\n",
			rec.BaseDate.Format("2006-01-02"),
			rec.PeriodIndex,
			rec.TrainStart.Format("2006-01-02"),
			rec.TrainEnd.Format("2006-01-02"),
			rec.TestStart.Format("2006-01-02"),
			rec.TestEnd.Format("2006-01-02"))

		if rec.Failed {
			fmt.Printf("   ❌ FAILED: %s\n", rec.Error)
			continue
		}

		fmt.Printf("   %-12s %10s %14s %10s\n", "strategy", "accuracy", "mean daily", "sharpe")
		fmt.Printf("   %s\n", strings.Repeat("-", 50))
		for _, name := range contracts.Strategies {
			m := rec.Metrics[name]
			fmt.Printf("   %-12s %9.2f%% %13.4f%% %10.2f\n",
				name, m.Accuracy*100, m.MeanDailyReturn*100, m.SharpeRatio)
		}
	}

	fmt.Println()
	fmt.Printf("Records: %d (failed: %d)\n", len(report.Records), report.FailedCount())

	// LSTM vs best baseline summary
	wins := 0
	evaluated := 0
	for _, rec := range report.Records {
		if rec.Failed {
			continue
		}
		evaluated++
		lstm := rec.Metrics[contracts.StrategyLSTM].SharpeRatio
		best := rec.Metrics[contracts.StrategyBuyHold].SharpeRatio
		for _, name := range []contracts.StrategyName{contracts.StrategyMomentum, contracts.StrategyContrarian} {
			if s := rec.Metrics[name].SharpeRatio; s > best {
				best = s
			}
		}
		if lstm > best {
			wins++
		}
	}
	if evaluated > 0 {
		fmt.Printf("💡 LSTM beat all baselines on Sharpe in %d/%d periods\n", wins, evaluated)
	}
}
