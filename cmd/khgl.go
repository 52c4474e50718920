package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goliq/internal/jra"
)

var (
	khglEQLevel       int
	khglEQType        int
	khglRegionalClass string
	khglGroundType    int

	khglShowAll bool
)

var khglCmd = &cobra.Command{
	Use:   "khgl",
	Short: "Look up the design horizontal seismic coefficient Khgl",
	Long: `Look up the design horizontal seismic coefficient at ground level

  Khgl = cz · Khgl0

where Khgl0 is the standard value for the load type and ground type and
cz is the regional modification factor.

Load types:
  Level 1           - Level 1 earthquake
  Level 2 Type I    - plate boundary earthquake
  Level 2 Type II   - inland earthquake

Examples:
  # Level 2 type I, region C, ground type I
  goliq khgl --eq-level 2 --eq-type 1 --regional-class C --ground-type 1

  # Full table
  goliq khgl --all`,
	RunE: runKhgl,
}

func init() {
	rootCmd.AddCommand(khglCmd)

	khglCmd.Flags().IntVarP(&khglEQLevel, "eq-level", "l", 2, "Earthquake level (1, 2)")
	khglCmd.Flags().IntVarP(&khglEQType, "eq-type", "t", 1, "Earthquake type for level 2 (1, 2)")
	khglCmd.Flags().StringVarP(&khglRegionalClass, "regional-class", "r", "C", "Regional class (A1, A2, B1, B2, C)")
	khglCmd.Flags().IntVarP(&khglGroundType, "ground-type", "g", 1, "Ground type (1, 2, 3)")

	khglCmd.Flags().BoolVarP(&khglShowAll, "all", "a", false, "Show Khgl for every load type, region and ground type")
}

func runKhgl(cmd *cobra.Command, args []string) error {
	khglRegionalClass = strings.ToUpper(khglRegionalClass)
	lt, ok := jra.LoadTypeFor(khglEQLevel, khglEQType)
	if !ok {
		return fmt.Errorf("invalid earthquake level/type: %d/%d", khglEQLevel, khglEQType)
	}

	printTitle("JRA DESIGN SEISMIC COEFFICIENT Khgl")

	if khglShowAll {
		loadTypes := []jra.LoadType{jra.Level1, jra.Level2Type1, jra.Level2Type2}
		for _, l := range loadTypes {
			printSection(fmt.Sprintf("%s:", l))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Region\tcz\tType I\tType II\tType III\n")
			fmt.Fprintf(w, "  ──────\t──\t──────\t───────\t────────\n")
			for i, rc := range jra.RegionalClasses {
				fmt.Fprintf(w, "  %s\t%.2f", rc, jra.RegionalCoeffs[i][l])
				for _, g := range jra.GroundTypes {
					k, err := jra.Khgl(l, rc, g)
					if err != nil {
						return err
					}
					marker := ""
					if l == lt && rc == khglRegionalClass && g == khglGroundType {
						marker = " ←"
					}
					fmt.Fprintf(w, "\t%.3f%s", k, marker)
				}
				fmt.Fprintln(w)
			}
			w.Flush()
			fmt.Println()
		}
	}

	k, err := jra.Khgl(lt, khglRegionalClass, khglGroundType)
	if err != nil {
		return err
	}
	rc, _ := jra.RegionalClassIndex(khglRegionalClass)

	printSection("RESULT:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Load type:\t%s\n", lt)
	fmt.Fprintf(w, "  Regional class:\t%s (cz = %.2f)\n", khglRegionalClass, jra.RegionalCoeffs[rc][lt])
	fmt.Fprintf(w, "  Ground type:\t%d (Khgl0 = %.2f)\n", khglGroundType, jra.Khgl0[lt][khglGroundType-1])
	w.Flush()
	fmt.Println()
	fmt.Printf("  Khgl = %.3f\n", k)
	fmt.Println()
	return nil
}
