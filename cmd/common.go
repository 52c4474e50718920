package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/config"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────────"
)

func printTitle(title string) {
	fmt.Println()
	fmt.Println(ruleHeavy)
	fmt.Printf("%*s\n", (len(ruleHeavy)/3+len(title))/2, title)
	fmt.Println(ruleHeavy)
	fmt.Println()
}

func printSection(title string) {
	fmt.Println(title)
	fmt.Println(ruleLight)
}

// methodFlags are the method parameter flags shared by assess and batch.
// A flag only overrides the configuration when it was set.
type methodFlags struct {
	method        string
	year          int
	eqLevel       int
	eqType        int
	khgl          float64
	regionalClass string
	groundType    int
	gwl           float64
	soilTable     string
	noCache       bool
}

func (f *methodFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.StringVarP(&f.method, "method", "m", "JRA", "Method: JRA, AIJ, \"Idriss and Boulanger\"")
	fs.IntVarP(&f.year, "year", "y", 2017, "JRA code year (2012, 2017)")
	fs.IntVarP(&f.eqLevel, "eq-level", "l", 2, "Earthquake level (1, 2)")
	fs.IntVarP(&f.eqType, "eq-type", "t", 1, "Earthquake type for level 2 (1: plate boundary, 2: inland)")
	fs.Float64VarP(&f.khgl, "khgl", "k", 0, "Use this Khgl instead of deriving it")
	fs.StringVarP(&f.regionalClass, "regional-class", "r", "C", "Regional class (A1, A2, B1, B2, C)")
	fs.IntVarP(&f.groundType, "ground-type", "g", 1, "Ground type (1, 2, 3)")
	fs.Float64Var(&f.gwl, "gwl", 0, "Ground water level (m below surface), overrides the boring log")
	fs.StringVar(&f.soilTable, "soil-table", "", "Soil property table (YAML)")
	fs.BoolVar(&f.noCache, "no-cache", false, "Parse files without the cache")
}

// apply copies the flags that were set onto c
func (f *methodFlags) apply(cmd *cobra.Command, c *config.Config) {
	changed := cmd.Flags().Changed
	if changed("method") {
		c.Method = f.method
	}
	if changed("year") {
		c.JRA.Year = &f.year
	}
	if changed("eq-level") {
		c.JRA.EQLevel = &f.eqLevel
	}
	if changed("eq-type") {
		c.JRA.EQType = &f.eqType
	}
	if changed("khgl") {
		given := true
		c.JRA.Khgl = &f.khgl
		c.JRA.IsGivenKhgl = &given
	}
	if changed("regional-class") {
		rc := strings.ToUpper(f.regionalClass)
		c.JRA.RegionalClass = &rc
	}
	if changed("ground-type") {
		c.JRA.GroundType = &f.groundType
	}
	if changed("gwl") {
		c.GroundWaterLevel = &f.gwl
	}
	if changed("soil-table") {
		c.SoilTable = f.soilTable
	}
	if f.noCache {
		c.Cache.Enabled = false
	}
}

// newPipeline resolves the configured method and soil table
func newPipeline(c *config.Config) (*liquefaction.Pipeline, error) {
	table, err := c.PropertyTable()
	if err != nil {
		return nil, err
	}
	return liquefaction.NewPipeline(c.Method, c.JRA, table, logger)
}

// newLoader returns a loader and a function releasing it. A cache that cannot
// be opened is logged and skipped.
func newLoader(c *config.Config) (*borehole.Loader, func()) {
	l := &borehole.Loader{Log: logger}
	if !c.Cache.Enabled {
		return l, func() {}
	}
	cache, err := borehole.OpenCache(c.Cache.Path)
	if err != nil {
		logger.Warn("parse cache unavailable", zap.String("path", c.Cache.Path), zap.Error(err))
		return l, func() {}
	}
	l.Cache = cache
	return l, func() { cache.Close() }
}

func describeMethod(m liquefaction.Method) string {
	p, ok := m.(liquefaction.JRAParams)
	if !ok {
		return m.Name()
	}
	if p.GivenKhgl {
		return fmt.Sprintf("JRA %d, Khgl = %.3f (given)", p.Year, p.Khgl)
	}
	return fmt.Sprintf("JRA %d, %s, region %s, ground type %d, Khgl = %.3f (derived)",
		p.Year, p.LoadType, p.RegionalClass, p.GroundType, p.Khgl)
}
