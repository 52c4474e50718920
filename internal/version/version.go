// Package version carries build metadata for goliq.
package version

import (
	"fmt"
	"strings"
)

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X github.com/alexiusacademia/goliq/internal/version.Version=0.3.0"
var (
	Version   = "0.2.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2025"
)

// Info describes a build together with the versions of its data formats
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	// Parser is the borehole parser version; cached records from another
	// parser version are never reused.
	Parser string
	// Methods lists the implemented design codes, e.g. "JRA 2012".
	Methods []string
}

// Get returns the build info for the given parser version and methods
func Get(parser string, methods ...string) Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Parser:    parser,
		Methods:   methods,
	}
}

// String renders the multi-line report printed by `goliq version`
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "goliq v%s\n", i.Version)
	if len(i.Methods) > 0 {
		fmt.Fprintf(&sb, "Methods: %s\n", strings.Join(i.Methods, ", "))
	}
	fmt.Fprintf(&sb, "Commit: %s  Built: %s  Parser: v%s\n", i.GitCommit, i.BuildTime, i.Parser)
	return sb.String()
}
