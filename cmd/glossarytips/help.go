package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glossarytips [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add hover tooltips for glossary terms to every page of a Canvas course.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "      --url <url>              Canvas base URL")
	fmt.Fprintln(w, "      --course <id>            Course id")
	fmt.Fprintln(w, "      --glossary-page <title>  Title of the glossary page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Glossary:")
	fmt.Fprintln(w, "  -g, --glossary-file <path>   Read terms from a .md, .html or .yaml file")
	fmt.Fprintln(w, "      --order <s>              Term order: authored, longest-first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -n, --dry-run                Enrich pages without saving them")
	fmt.Fprintln(w, "      --print-html             Print the enriched body of changed pages")
	fmt.Fprintln(w, "      --no-color               Disable colored output")
	fmt.Fprintln(w, "      --metrics-file <path>    Write Prometheus textfile metrics")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug logs")
	fmt.Fprintln(w, "      --version                Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GLOSSARYTIPS_CONFIG, GLOSSARYTIPS_URL, GLOSSARYTIPS_TOKEN,")
	fmt.Fprintln(w, "  GLOSSARYTIPS_COURSE_ID, GLOSSARYTIPS_GLOSSARY_PAGE, GLOSSARYTIPS_LOG_LEVEL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}
