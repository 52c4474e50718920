package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/diagram"
	"github.com/alexiusacademia/goliq/internal/export"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

var (
	assessFile    string
	assessDiagram bool
	assessOutput  string
	assessExport  []string
	assessDetails bool

	assessFlags methodFlags
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Compute FL at every SPT depth of one boring log",
	Long: `Compute the factor of safety against liquefaction (FL) for one
boring-log XML file.

For each SPT depth the command computes:
  - Total and effective overburden stress σv, σ'v
  - Stress reduction factor rd and seismic load L = rd·Khgl·σv/σ'v
  - Normalized N1, fines-corrected Na and strength ratio RL
  - Resistance R = Cw·RL and FL = R/L

Method parameters come from the configuration file and can be
overridden by flags. Khgl is derived from the earthquake level,
regional class and ground type unless --khgl is given.

Examples:
  # Level 2 type I, region C, ground type I
  goliq assess --file 01_000701.XML --eq-level 2 --eq-type 1 -r C -g 1

  # Level 1 with a given Khgl and a fixed water level
  goliq assess -f site.xml -l 1 --khgl 0.15 --gwl 1.5

  # Profile diagram and an Excel report
  goliq assess -f site.xml --diagram --output out/profile.png --export out/site.xlsx`,
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVarP(&assessFile, "file", "f", "", "Boring-log XML file [required]")
	assessFlags.register(assessCmd)

	// Output flags
	assessCmd.Flags().BoolVarP(&assessDiagram, "diagram", "d", false, "Show ASCII depth profile")
	assessCmd.Flags().StringVarP(&assessOutput, "output", "o", "", "Save depth profile chart (png, svg, pdf)")
	assessCmd.Flags().StringSliceVarP(&assessExport, "export", "e", nil, "Export report (.csv, .json, .xlsx, .pdf), repeatable")
	assessCmd.Flags().BoolVar(&assessDetails, "details", false, "Show intermediate values (rd, CFc, Cw, R)")

	assessCmd.MarkFlagRequired("file")
}

func runAssess(cmd *cobra.Command, args []string) error {
	assessFlags.apply(cmd, cfg)

	// Invalid parameters fail before the file is read
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	loader, release := newLoader(cfg)
	defer release()

	rec, err := loader.Load(context.Background(), assessFile)
	if err != nil {
		return err
	}

	a, err := p.Assess(rec, cfg.GroundWaterLevel)
	if err != nil {
		return err
	}

	printAssessment(assessFile, rec, a, p.Method())

	if assessDiagram {
		fmt.Print(diagram.DrawASCIIProfile(a.Rows, a.GroundWaterLevel))
		fmt.Println()
	}

	if assessOutput != "" {
		path, err := diagram.ExportProfile(a.Rows, a.GroundWaterLevel, assessOutput)
		if err != nil {
			return fmt.Errorf("failed to export profile: %w", err)
		}
		fmt.Printf("Profile chart saved to: %s\n", path)
	}

	if len(assessExport) > 0 {
		report := export.NewReport(assessFile, rec, a)
		for _, path := range assessExport {
			if err := export.ToFile(path, report, export.PDFOptions{FontPath: cfg.Export.PDFFont}); err != nil {
				return fmt.Errorf("failed to export %s: %w", path, err)
			}
			fmt.Printf("Report saved to: %s\n", path)
		}
	}
	return nil
}

func printAssessment(path string, rec *borehole.Record, a *liquefaction.Assessment, m liquefaction.Method) {
	printTitle("LIQUEFACTION ASSESSMENT - " + m.Name())

	printSection("BOREHOLE:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File:\t%s\n", path)
	fmt.Fprintf(w, "  Location:\t%.6f N, %.6f E\n", rec.Lat, rec.Lon)
	if rec.StartDate != "" {
		fmt.Fprintf(w, "  Start date:\t%s\n", rec.StartDate)
	}
	fmt.Fprintf(w, "  Tip elevation:\t%.2f m\n", rec.TipElevation)
	fmt.Fprintf(w, "  Soil layers:\t%d (to %.2f m)\n", len(rec.SoilLayers), rec.MaxDepth())
	fmt.Fprintf(w, "  SPT readings:\t%d\n", len(rec.SPT))
	if rec.GroundWaterLevel != nil && *rec.GroundWaterLevel != a.GroundWaterLevel {
		fmt.Fprintf(w, "  Water level:\t%.2f m (logged %.2f m)\n", a.GroundWaterLevel, *rec.GroundWaterLevel)
	} else {
		fmt.Fprintf(w, "  Water level:\t%.2f m\n", a.GroundWaterLevel)
	}
	w.Flush()
	fmt.Println()

	printSection("PARAMETERS:")
	fmt.Printf("  %s\n\n", describeMethod(m))

	printSection("SOIL INTERVALS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  From (m)\tTo (m)\tSoil\tγsat\tγt\tD50\tFc\n")
	fmt.Fprintf(w, "  ────────\t──────\t────\t────\t──\t───\t──\n")
	for _, iv := range a.Intervals {
		mark := ""
		if !iv.Resolved {
			mark = " *"
		}
		fmt.Fprintf(w, "  %.2f\t%.2f\t%s%s\t%.1f\t%.1f\t%.3f\t%.0f\n",
			iv.UpperDepth, iv.LowerDepth, iv.ClassName, mark, iv.GammaSat, iv.GammaWet, iv.D50, iv.Fc)
	}
	w.Flush()
	fmt.Println()

	printSection("FL BY DEPTH:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	if assessDetails {
		fmt.Fprintf(w, "Depth\tN\tσv\tσ'v\trd\tL\tN1\tCFc\tNa\tRL\tCw\tR\tFL\t\n")
	} else {
		fmt.Fprintf(w, "Depth\tN\tσv\tσ'v\tL\tN1\tNa\tRL\tFL\t\n")
	}
	for _, r := range a.Rows {
		marker := ""
		if r.Liquefiable() {
			marker = " ◄"
		}
		if assessDetails {
			fmt.Fprintf(w, "%.2f\t%.0f\t%.1f\t%.1f\t%.3f\t%.3f\t%.2f\t%.3f\t%.2f\t%.3f\t%.2f\t%.3f\t%.3f%s\t\n",
				r.Depth, r.N, r.SigmaV, r.SigmaPV, r.Rd, r.L, r.N1, r.CFc, r.Na, r.RL, r.Cw, r.R, r.FL, marker)
		} else {
			fmt.Fprintf(w, "%.2f\t%.0f\t%.1f\t%.1f\t%.3f\t%.2f\t%.2f\t%.3f\t%.3f%s\t\n",
				r.Depth, r.N, r.SigmaV, r.SigmaPV, r.L, r.N1, r.Na, r.RL, r.FL, marker)
		}
	}
	w.Flush()
	fmt.Println()

	if len(a.Events) > 0 {
		printSection("DATA WARNINGS:")
		for _, e := range a.Events {
			fmt.Printf("  ⚠ %.2f m  %s: %s\n", e.Depth, e.ClassName, e.Detail)
		}
		fmt.Println()
	}

	s := a.Summary
	lines := []string{
		fmt.Sprintf("Minimum FL:        %.3f at %.2f m", s.MinFL, s.CriticalDepth),
		fmt.Sprintf("Maximum FL:        %.3f", s.MaxFL),
		fmt.Sprintf("FL < 1.0:          %d of %d depths", s.Liquefiable, s.Rows),
		fmt.Sprintf("Liquefaction risk: %s", s.Risk),
	}
	for _, st := range s.BySoil {
		lines = append(lines, fmt.Sprintf("  %s: n=%d, mean N %.1f, mean FL %.3f", st.SoilType, st.Count, st.MeanN, st.MeanFL))
	}
	fmt.Print(diagram.DrawSummaryBox("SUMMARY", lines))
	fmt.Println()
}
