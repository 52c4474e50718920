package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goliq/internal/soil"
)

var (
	soilTablePath string
	soilCheckFile []string
)

var soilCmd = &cobra.Command{
	Use:   "soil",
	Short: "Inspect soil property tables and boring-log class names",
	Long: `Inspect the soil property table used to look up unit weights,
D50 and fines content, and check boring-log class names against it.`,
}

var soilListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the soil property table",
	Long: `List every class name of the soil property table with its
saturated and wet unit weights, D50 and fines content.

Examples:
  goliq soil list
  goliq soil list --soil-table soils.yaml`,
	RunE: runSoilList,
}

var soilCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check boring-log class names against the property table",
	Long: `List the soil class names that appear in boring logs, their legend
category and whether the property table resolves them. Unresolved names
are assessed with default properties.

Examples:
  goliq soil check --file 01_000701.XML
  goliq soil check -f a.xml -f b.xml --soil-table soils.yaml`,
	RunE: runSoilCheck,
}

func init() {
	rootCmd.AddCommand(soilCmd)
	soilCmd.AddCommand(soilListCmd)
	soilCmd.AddCommand(soilCheckCmd)

	soilCmd.PersistentFlags().StringVar(&soilTablePath, "soil-table", "", "Soil property table (YAML)")
	soilCheckCmd.Flags().StringSliceVarP(&soilCheckFile, "file", "f", nil, "Boring-log XML file, repeatable [required]")
	soilCheckCmd.MarkFlagRequired("file")
}

func loadSoilTable(cmd *cobra.Command) (*soil.Table, error) {
	if cmd.Flags().Changed("soil-table") {
		cfg.SoilTable = soilTablePath
	}
	return cfg.PropertyTable()
}

func runSoilList(cmd *cobra.Command, args []string) error {
	table, err := loadSoilTable(cmd)
	if err != nil {
		return err
	}

	printTitle("SOIL PROPERTY TABLE")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tγsat (kN/m³)\tγt (kN/m³)\tD50 (mm)\tFc (%%)\tCategory\n")
	fmt.Fprintf(w, "  ────\t────────────\t──────────\t────────\t──────\t────────\n")
	for _, e := range table.Entries() {
		fmt.Fprintf(w, "  %s\t%.1f\t%.1f\t%.3f\t%.0f\t%s\n",
			e.Name, e.GammaSat, e.GammaWet, e.D50, e.Fc, soil.Classify(e.Name).Label())
	}
	w.Flush()
	fmt.Println()
	d := soil.Default
	fmt.Printf("  %d entries. Unknown names use γsat %.1f, γt %.1f, D50 %.3f, Fc %.0f.\n\n",
		table.Len(), d.GammaSat, d.GammaWet, d.D50, d.Fc)
	return nil
}

type classUse struct {
	name   string
	code   string
	layers int
	files  map[string]bool
}

func runSoilCheck(cmd *cobra.Command, args []string) error {
	table, err := loadSoilTable(cmd)
	if err != nil {
		return err
	}
	loader, release := newLoader(cfg)
	defer release()

	var order []string
	uses := map[string]*classUse{}
	for _, path := range soilCheckFile {
		rec, err := loader.Load(context.Background(), path)
		if err != nil {
			return err
		}
		for _, l := range rec.SoilLayers {
			u, ok := uses[l.ClassName]
			if !ok {
				u = &classUse{name: l.ClassName, code: l.ClassCode, files: map[string]bool{}}
				uses[l.ClassName] = u
				order = append(order, l.ClassName)
			}
			u.layers++
			u.files[path] = true
		}
	}

	printTitle("SOIL CLASS CHECK")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tCode\tLayers\tFiles\tCategory\tTable\n")
	fmt.Fprintf(w, "  ────\t────\t──────\t─────\t────────\t─────\n")
	unresolved := 0
	for _, name := range order {
		u := uses[name]
		status := "✓"
		if _, ok := table.Lookup(name); !ok {
			status = "✗ default"
			unresolved++
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%d\t%s\t%s\n",
			u.name, u.code, u.layers, len(u.files), soil.Classify(name).Label(), status)
	}
	w.Flush()
	fmt.Println()

	if unresolved > 0 {
		fmt.Printf("  %d of %d class names are not in the property table.\n", unresolved, len(order))
		fmt.Println("  Add them to a --soil-table file to avoid default properties.")
	} else {
		fmt.Printf("  All %d class names are in the property table.\n", len(order))
	}
	fmt.Println()
	return nil
}
