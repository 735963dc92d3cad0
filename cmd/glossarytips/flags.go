package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// courseFlags override the course section of the config.
type courseFlags struct {
	url          string
	courseID     string
	glossaryPage string
}

// glossaryFlags override where terms come from and how they are applied.
type glossaryFlags struct {
	file  string
	order string
}

// outputFlags control persistence and preview.
type outputFlags struct {
	dryRun      bool
	printHTML   bool
	noColor     bool
	metricsFile string
}

// cliFlags holds all flags of the glossarytips command.
type cliFlags struct {
	common   commonFlags
	course   courseFlags
	glossary glossaryFlags
	output   outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs, including API requests")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
}

// addCourseFlags adds course selection flags to a FlagSet.
func addCourseFlags(fs *flag.FlagSet, f *courseFlags) {
	fs.StringVar(&f.url, "url", "", "Canvas base URL")
	fs.StringVar(&f.courseID, "course", "", "course id")
	fs.StringVar(&f.glossaryPage, "glossary-page", "", "title of the glossary page")
}

// addGlossaryFlags adds glossary source flags to a FlagSet.
func addGlossaryFlags(fs *flag.FlagSet, f *glossaryFlags) {
	fs.StringVarP(&f.file, "glossary-file", "g", "", "read terms from a .md, .html or .yaml file")
	fs.StringVar(&f.order, "order", "", "term order: authored, longest-first")
}

// addOutputFlags adds persistence and preview flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "enrich pages without saving them")
	fs.BoolVar(&f.printHTML, "print-html", false, "print the enriched body of every changed page")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
}

// parseFlags parses args, excluding the program name.
func parseFlags(args []string, usageOut io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("glossarytips", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addCourseFlags(fs, &f.course)
	addGlossaryFlags(fs, &f.glossary)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
