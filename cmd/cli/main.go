// Command cli runs one-shot directory scans from a terminal. With no path
// argument it prompts for one, line-oriented, when attached to a tty.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dirscope/dirscope/internal/scan"
)

var version = "dev"

func help() {
	fmt.Println(heredoc.Doc(`
		dirscope scans a directory and reports the disk space used by every
		file and subdirectory beneath it, largest first.

		Usage:

			dirscope [flags] [path]

		Positional Arguments:
		  path                   Directory to scan. Prompted for interactively
		                         when omitted and stdin is a terminal.

		Flags:
	`))
	pflag.PrintDefaults()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		jsonOut     bool
		top         int
		showVersion bool
	)

	pflag.BoolVar(&jsonOut, "json", false, "Output the full result as JSON")
	pflag.IntVarP(&top, "top", "t", 0, "Only show the N largest items (0=all)")
	pflag.BoolVarP(&showVersion, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if showVersion {
		fmt.Println(version)
		return nil
	}

	if top < 0 {
		return fmt.Errorf("top cannot be negative")
	}

	path := ""
	if pflag.NArg() > 0 {
		path = pflag.Args()[0]
	} else {
		var err error
		path, err = promptPath()
		if err != nil {
			return err
		}
	}

	// One-shot invocation: a minimal cache satisfies the engine but never
	// gets a second lookup.
	engine := scan.NewScanner(scan.NewCache(scan.CacheConfig{MaxEntries: 1, MaxBytes: 1 << 20}))

	result, err := engine.Scan(path, false)
	if err != nil {
		return err
	}

	if top > 0 && len(result.Items) > top {
		result.Items = result.Items[:top]
	}

	if jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	return printTable(result)
}

// promptPath reads a path from stdin, printing a prompt when interactive.
func promptPath() (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Print("Enter directory path: ")
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printTable(result *scan.Result) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	for _, item := range result.Items {
		kind := "file"
		if item.IsDir {
			kind = "dir"
		}
		fmt.Fprintf(w, "%s\t%s\t(%s)\n", item.SizeFormatted, item.Path, kind)
	}

	fmt.Fprintf(w, "\nTotal:\t%s (%s bytes)\n",
		result.TotalSizeFormatted, humanize.Comma(result.TotalSize))
	fmt.Fprintf(w, "Elapsed:\t%.2fs\n", result.ScanTime)

	return w.Flush()
}
