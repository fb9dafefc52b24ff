// Command retikgrep is a line-oriented grep built on package retik. It
// keeps the teacher's shape — read stdin or walk files/directories,
// print matching lines, exit 1 when nothing matched — but drives flag
// parsing and logging through the ambient CLI stack (goflags, gologger)
// instead of hand-rolled os.Args indexing, and exposes Sub through -R.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/retik-go/retik"
)

type options struct {
	Pattern   string
	Files     goflags.StringSlice
	Recursive bool
	Replace   string
	Verbose   bool
	Silent    bool
}

func parseFlags() *options {
	opts := &options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("retikgrep searches input for lines matching a retik pattern.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "regexp", "e", "", "pattern to search for"),
		flagSet.StringSliceVarP(&opts.Files, "file", "f", nil, "files to search (default: stdin)", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.BoolVarP(&opts.Recursive, "recursive", "r", false, "recurse into directories named by -f"),
		flagSet.StringVarP(&opts.Replace, "replace", "R", "", "replace every match on a line with this string instead of printing whole lines"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "omit the file-name prefix on matching lines"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("failed to parse flags: %v", err)
	}

	return opts
}

func main() {
	opts := parseFlags()
	if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Pattern == "" {
		gologger.Fatal().Msg("a pattern is required (-e)")
	}

	re, err := retik.Compile(opts.Pattern)
	if err != nil {
		gologger.Fatal().Msgf("invalid pattern: %v", err)
	}

	g := &grepper{re: re, replace: opts.Replace, doReplace: opts.Replace != "", silent: opts.Silent}

	var found bool
	switch {
	case len(opts.Files) == 0:
		found = g.searchStdin()
	case opts.Recursive:
		for _, path := range opts.Files {
			if g.searchDir(path) {
				found = true
			}
		}
	default:
		multi := len(opts.Files) > 1 && !opts.Silent
		for _, path := range opts.Files {
			if g.searchFile(path, multi) {
				found = true
			}
		}
	}

	if !found {
		os.Exit(1)
	}
}

// grepper bundles the compiled pattern with the per-run output mode so
// the three traversal helpers below don't each thread the same flags.
type grepper struct {
	re        *retik.Regexp
	replace   string
	doReplace bool
	silent    bool
}

// emit renders one matching line, either unchanged or with every match on
// it substituted via retik.Regexp.Sub when -replace is set.
func (g *grepper) emit(line string) string {
	if g.doReplace {
		return g.re.Sub(g.replace, line)
	}
	return line
}

func (g *grepper) searchStdin() bool {
	found := false
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, ok := g.re.Search(scanner.Text()); ok {
			fmt.Println(g.emit(scanner.Text()))
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		gologger.Fatal().Msgf("reading stdin: %v", err)
	}
	return found
}

func (g *grepper) searchDir(dir string) bool {
	found := false
	entries, err := os.ReadDir(dir)
	if err != nil {
		gologger.Error().Msgf("reading %s: %v", dir, err)
		return false
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		var hit bool
		if entry.IsDir() {
			hit = g.searchDir(path)
		} else {
			hit = g.searchFile(path, !g.silent)
		}
		if hit {
			found = true
		}
	}
	return found
}

func (g *grepper) searchFile(path string, withName bool) bool {
	file, err := os.Open(path)
	if err != nil {
		gologger.Error().Msgf("opening %s: %v", path, err)
		return false
	}
	defer file.Close()

	found := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if _, ok := g.re.Search(line); ok {
			found = true
			if withName {
				fmt.Printf("%s:%s\n", path, g.emit(line))
			} else {
				fmt.Println(g.emit(line))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		gologger.Error().Msgf("reading %s: %v", path, err)
	}
	return found
}
