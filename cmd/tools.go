package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc/bp"
	"github.com/nathanhack/ldpc/cmd/internal/tools/chart"
	"github.com/nathanhack/ldpc/cmd/internal/tools/csv"
	"github.com/nathanhack/ldpc/cmd/internal/tools/decode"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for ECCs",
	Long:    `Tools for ECCs`,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsLinearblockCmd represents the linearblock command
var toolsLinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "Linearblock channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsSoftdecisionCmd represents the softdecision command
var toolsSoftdecisionCmd = &cobra.Command{
	Use:     "softdecision",
	Aliases: []string{"soft", "s"},
	Short:   "Using soft decisions",
	Long:    `Channel simulators for linearblock ECCs using soft decisions`,
}

// toolsBscCmd represents the bsc command
var toolsBscCmd = &cobra.Command{
	Use:   "bsc",
	Short: "A binary symmetric channel simulator",
	Long:  `A binary symmetric channel simulator for linearblock ECCs`,
}

// toolsBpCmd represents the bp command
var toolsBpCmd = &cobra.Command{
	Use:     "bp ECC_JSON_FILE RESULT_JSON",
	Aliases: []string{"b"},
	Short:   "A linearblock BSC simulator with a belief propagation decoder",
	Long:    `A linearblock BSC simulator with a loopy belief propagation decoder over channel LLRs`,
	Run:     bp.BpRun,
}

// toolsDecodeCmd represents the decode command
var toolsDecodeCmd = &cobra.Command{
	Use:     "decode ECC_JSON_FILE RECEIVED",
	Aliases: []string{"d"},
	Short:   "Decode a received bit vector with belief propagation",
	Long:    `Decode a single received bit vector with a loopy belief propagation decoder; RECEIVED is either a literal bit string or a file of '0'/'1' characters`,
	Run:     decode.DecodeRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"g"},
	Short:   "Export to an HTML chart",
	Long:    `Export to an HTML bar chart of error rates`,
	Run:     chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)
	toolsCmd.AddCommand(toolsDecodeCmd)

	toolsChansimCmd.AddCommand(toolsLinearblockCmd)
	toolsLinearblockCmd.AddCommand(toolsSoftdecisionCmd)

	toolsSoftdecisionCmd.AddCommand(toolsBscCmd)

	toolsBscCmd.AddCommand(toolsBpCmd)
	toolsBpCmd.Flags().UintVarP(&bp.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsBpCmd.Flags().Float64SliceVarP(&bp.ErrorProbability, "probability", "p", []float64{0.01, 0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45}, "crossover probabilities to test (0, 1)")
	toolsBpCmd.Flags().UintVar(&bp.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsBpCmd.Flags().UintVarP(&bp.MaxIter, "iters", "i", 20, "max number of belief propagation iterations per decode")
	toolsBpCmd.Flags().StringVarP(&bp.RuleName, "rule", "r", "sum-product", "the check node update rule: sum-product or min-sum")
	toolsBpCmd.Flags().BoolVar(&bp.TieBreakOne, "tie-one", false, "break zero belief ties toward 1 instead of 0")

	toolsDecodeCmd.Flags().Float64VarP(&decode.CrossoverProbability, "probability", "p", 0.05, "the channel crossover probability (0, 1)")
	toolsDecodeCmd.Flags().UintVarP(&decode.MaxIter, "iters", "i", 50, "max number of belief propagation iterations")
	toolsDecodeCmd.Flags().StringVarP(&decode.RuleName, "rule", "r", "sum-product", "the check node update rule: sum-product or min-sum")
	toolsDecodeCmd.Flags().BoolVar(&decode.TieBreakOne, "tie-one", false, "break zero belief ties toward 1 instead of 0")
	toolsDecodeCmd.Flags().UintVar(&decode.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsDecodeCmd.Flags().BoolVarP(&decode.Ascii, "ascii", "a", false, "also print the decoded bits as 8 bit ascii characters")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.MessageError, "message", "m", false, "outputs the MessageError instead of CodewordError")
	toolsCSVCmd.Flags().BoolVarP(&csv.ParityError, "parity", "p", false, "outputs the ParityError instead of CodewordError")
	toolsCSVCmd.Flags().BoolVar(&csv.Convergence, "convergence", false, "outputs the convergence rate instead of CodewordError")
	toolsCSVCmd.Flags().BoolVar(&csv.Iterations, "iterations", false, "outputs the mean decode iterations instead of CodewordError")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the html chart")
}
