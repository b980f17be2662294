// Command posture analyses keypoint files produced by a pose estimation
// model and prints ergonomic metric reports as JSON.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/swdee/go-posture"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	paramsFile string
	verbose    bool
	batchSize  int
	cpuCores   []int
	listFile   string

	logger   *zap.Logger
	analyzer *posture.Analyzer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "posture",
	Short: "Ergonomic posture metrics from 3D body keypoints",
	Long: `posture reads keypoint files (YAML or JSON) produced by a 3D pose
estimation model and computes neck, shoulder, elbow, wrist and back metrics,
anthropometric measurements, body symmetry and an overall risk assessment.

A keypoint file holds either a "keypoints" map of MHR70 landmark name to
[x, y, z] or a "joints_3d" list of 70 [x, y, z] entries in model order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if len(cpuCores) > 0 {
			if err := posture.SetCPUAffinity(cpuCores); err != nil {
				return err
			}
			logger.Debug("Pinned to CPU cores", zap.Ints("cores", cpuCores))
		}

		params := posture.DefaultParams()

		if paramsFile != "" {
			params, err = posture.LoadParams(paramsFile)
			if err != nil {
				return err
			}
		}

		analyzer, err = posture.NewAnalyzer(params, posture.WithLogger(logger))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// analyzeCmd prints one report per keypoint file
var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE...]",
	Short: "Analyze the posture in each keypoint file",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := run(cmd, args)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), results)
	},
}

// summaryCmd prints population statistics over all keypoint files
var summaryCmd = &cobra.Command{
	Use:   "summary [FILE...]",
	Short: "Summarize the posture risk of many subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := run(cmd, args)
		if err != nil {
			return err
		}

		summary, err := posture.Summarize(reports(results))
		if err != nil {
			return fmt.Errorf("no file could be analysed: %w", err)
		}

		return writeJSON(cmd.OutOrStdout(), struct {
			TotalFiles int             `json:"total_files"`
			Summary    posture.Summary `json:"summary"`
			Results    []fileResult    `json:"results"`
		}{len(results), summary, results})
	},
}

// compareCmd compares a current measurement against previous ones
var compareCmd = &cobra.Command{
	Use:   "compare CURRENT [PREVIOUS...]",
	Short: "Compare current posture with previous measurements",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := run(cmd, args)
		if err != nil {
			return err
		}

		if results[0].Report == nil {
			return fmt.Errorf("current measurement %s: %s", results[0].File, results[0].Error)
		}

		cmp, err := analyzer.Compare(results[0].Report, reports(results[1:]))
		if errors.Is(err, posture.ErrNoReports) {
			return fmt.Errorf("no previous measurement could be analysed")
		}
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), struct {
			Current    *posture.Report    `json:"current_metrics"`
			Comparison posture.Comparison `json:"comparison"`
		}{results[0].Report, cmp})
	},
}

// run analyses the files given as arguments
func run(cmd *cobra.Command, files []string) ([]fileResult, error) {

	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be at least 1, got %d", batchSize)
	}

	if listFile != "" {
		listed, err := readFileList(listFile)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no keypoint files given")
	}

	pool := posture.NewBatchPool(1, batchSize)
	defer pool.Close()

	return analyzeFiles(cmd.Context(), analyzer, pool, files, logger)
}

// reports returns the successful reports from the results
func reports(results []fileResult) []*posture.Report {
	out := make([]*posture.Report, 0, len(results))
	for _, r := range results {
		if r.Report != nil {
			out = append(out, r.Report)
		}
	}
	return out
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "YAML file of threshold and calibration params")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch", 16, "Number of keypoint files analysed concurrently per batch")

	rootCmd.PersistentFlags().StringVar(&listFile, "list", "", "Text file listing keypoint files, one per line")
	rootCmd.PersistentFlags().IntSliceVar(&cpuCores, "cpus", nil, "CPU cores to pin analysis to, eg: 4,5,6,7")

	rootCmd.AddCommand(analyzeCmd, summaryCmd, compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
