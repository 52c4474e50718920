package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/goliq/internal/batch"
	"github.com/alexiusacademia/goliq/internal/export"
)

var (
	batchDir       string
	batchPattern   string
	batchJobs      int
	batchExport    string
	batchReportDir string

	batchFlags methodFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess every boring log in a directory",
	Long: `Assess every boring-log XML file in a directory in parallel with the
same method parameters and print one summary line per file.

Files that cannot be parsed or assessed are reported and skipped.
Invalid method parameters stop the run before any file is read.

Examples:
  goliq batch --dir logs/ --jobs 4
  goliq batch --dir logs/ --pattern "01_*.XML" --export summary.csv
  goliq batch --dir logs/ --reports out/ -l 1 -r A1 -g 2`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchDir, "dir", "", "Directory of boring-log XML files [required]")
	batchCmd.Flags().StringVarP(&batchPattern, "pattern", "p", "", "File name pattern (default from config, *.XML)")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "Files assessed concurrently (default from config)")
	batchCmd.Flags().StringVar(&batchExport, "export", "", "Write the summary table (.csv)")
	batchCmd.Flags().StringVar(&batchReportDir, "reports", "", "Write a JSON report per file to this directory")
	batchFlags.register(batchCmd)

	batchCmd.MarkFlagRequired("dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	batchFlags.apply(cmd, cfg)
	if cmd.Flags().Changed("jobs") {
		cfg.Batch.Jobs = batchJobs
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Batch.Pattern = batchPattern
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	paths, err := batch.Discover(batchDir, cfg.Batch.Pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matching %q in %s", cfg.Batch.Pattern, batchDir)
	}

	loader, release := newLoader(cfg)
	defer release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runner := &batch.Runner{
		Pipeline: p,
		Loader:   loader,
		Jobs:     cfg.Batch.Jobs,
		GWL:      cfg.GroundWaterLevel,
		Log:      logger,
	}
	results, runErr := runner.Run(ctx, paths)

	printTitle("BATCH LIQUEFACTION ASSESSMENT - " + p.Method().Name())
	fmt.Printf("  %s\n\n", describeMethod(p.Method()))

	var reports []*export.Report
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File\tGWL (m)\tDepths\tMin FL\tat (m)\tFL<1\tRisk\tWarnings\n")
	fmt.Fprintf(w, "  ────\t───────\t──────\t──────\t──────\t────\t────\t────────\n")
	for _, r := range results {
		name := filepath.Base(r.Path)
		if r.Err != nil {
			fmt.Fprintf(w, "  %s\t-\t-\t-\t-\t-\tfailed\t-\n", name)
			continue
		}
		a := r.Assessment
		s := a.Summary
		fmt.Fprintf(w, "  %s\t%.2f\t%d\t%.3f\t%.2f\t%d\t%s\t%d\n",
			name, a.GroundWaterLevel, s.Rows, s.MinFL, s.CriticalDepth, s.Liquefiable, s.Risk, len(a.Events))
		reports = append(reports, export.NewReport(r.Path, r.Record, a))
	}
	w.Flush()
	fmt.Println()

	failed := batch.Failed(results)
	if len(failed) > 0 {
		printSection("FAILED:")
		for _, r := range failed {
			fmt.Printf("  %s: %v\n", filepath.Base(r.Path), r.Err)
		}
		fmt.Println()
	}
	fmt.Printf("  %d assessed, %d failed in %s\n\n", len(reports), len(failed), time.Since(start).Round(time.Millisecond))

	if batchExport != "" {
		if err := writeSummaryCSV(batchExport, reports); err != nil {
			return err
		}
		fmt.Printf("Summary saved to: %s\n", batchExport)
	}
	if batchReportDir != "" {
		for _, rep := range reports {
			name := filepath.Base(rep.Source)
			path := filepath.Join(batchReportDir, name[:len(name)-len(filepath.Ext(name))]+".json")
			if err := export.ToFile(path, rep, export.PDFOptions{}); err != nil {
				logger.Error("report export failed", zap.String("path", path), zap.Error(err))
				continue
			}
		}
		fmt.Printf("Reports saved to: %s\n", batchReportDir)
	}
	return runErr
}

func writeSummaryCSV(path string, reports []*export.Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSummaryCSV(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
