package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "signalcheck",
	Short: "LSTM 시그널 워크포워드 검증기",
	Long: `signalcheck - 딥러닝 시그널이 실제로 거래 가능한지 검증하는 도구

일별 초과수익 예측 LSTM을 barebone 전략 3종(buy&hold, momentum,
contrarian)과 같은 잣대로 워크포워드 평가합니다.

Usage:
  go run ./cmd/signalcheck [command]

Examples:
  go run ./cmd/signalcheck fetch --market KOSPI --top 200
  go run ./cmd/signalcheck evaluate --base-dates 2018-01-02,2019-01-02
  go run ./cmd/signalcheck schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
