package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

type Options struct {
	Src         string // Path to source file. Empty means read stdin.
	Out         string // Path to output .ll file.
	Verbose     bool   // Set true if compiler should print the AST and IR to stdout.
	TokenStream bool   // Set true if compiler should output the token stream and exit.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "toylangc 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments.
func ParseArgs() (Options, error) {
	opt := Options{}
	if len(os.Args) < 2 {
		return opt, nil
	}
	args := os.Args[1:]
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			// Help and usage.
			printHelp()
			os.Exit(0)
		case "-o":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i1+1])
			}
			opt.Out = args[i1+1]
			i1++
		case "-ts":
			// Output token stream.
			opt.TokenStream = true
		case "-v", "--v", "-version", "--version":
			// Application version.
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			// Verbose mode.
			opt.Verbose = true
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			opt.Src = args[i1]
		}
	}
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "--h, --help")
	_, _ = fmt.Fprintln(w, "-o\tPath and name of the output .ll file. Defaults to output.ll.")
	_, _ = fmt.Fprintln(w, "-ts\tOutput the tokens of the source code and exit.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_, _ = fmt.Fprintln(w, "--v, --version")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print the parsed AST and generated IR to stdout.")
	_ = w.Flush()
}
