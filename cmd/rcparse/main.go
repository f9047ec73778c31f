// Command rcparse validates birth numbers given as arguments or on stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"

	"rcgate/pkg/birthnumber"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

type options struct {
	Separator      string `long:"separator" short:"s" env:"RC_SEPARATOR" description:"Separator placed between date part and serial" default:"/"`
	Now            string `long:"now" description:"Reference date (YYYY-MM-DD) used to resolve nine-digit numbers"`
	RollingCentury bool   `long:"rolling-century" env:"RC_ROLLING_CENTURY" description:"Resolve ten-digit numbers into the current century"`
	Output         string `long:"output" short:"o" description:"Output format" choice:"table" choice:"json" choice:"plain" default:"table"`
	Explain        bool   `long:"explain" short:"e" description:"Show why rejected numbers failed"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [NUMBER...]"

	rest, err := parser.ParseArgs(args)
	if flags.WroteHelp(err) {
		fmt.Fprintln(stdout, err)
		return exitOK
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	now := time.Now()
	if opts.Now != "" {
		now, err = time.Parse(time.DateOnly, opts.Now)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --now %q: expected YYYY-MM-DD\n", opts.Now)
			return exitUsage
		}
	}
	if err := birthnumber.ValidateSeparator(opts.Separator); err != nil {
		fmt.Fprintf(stderr, "invalid --separator: %v\n", err)
		return exitUsage
	}

	inputs := rest
	if len(inputs) == 0 {
		inputs, err = readLines(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "read stdin: %v\n", err)
			return exitUsage
		}
	}

	policy := birthnumber.CenturyFixed
	if opts.RollingCentury {
		policy = birthnumber.CenturyRolling
	}
	p := birthnumber.NewParser(birthnumber.WithCenturyPolicy(policy))

	records := make([]record, 0, len(inputs))
	code := exitOK
	for _, input := range inputs {
		bn, reason := p.Inspect(input, now)
		if reason != birthnumber.ReasonValid {
			code = exitRejected
		}
		records = append(records, newRecord(input, bn, reason, opts.Separator, opts.Explain))
	}

	if err := write(stdout, opts.Output, records); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return exitUsage
	}
	return code
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
