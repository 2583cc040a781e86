package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("roi %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		}
	}
	if len(os.Args) != 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("roi v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Read script: %v", err)
	}

	result := NewApp(cfg).Evaluate(string(source))
	writeResult(os.Stdout, result)
	if !result.OK() {
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "roi - evaluate region-of-interest scripts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: roi [options] <script.roi>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  ROI_LOG_LEVEL=debug      Enable debug logging")
	fmt.Fprintln(w, "  ROI_EVAL_TIMEOUT=5s      Limit for a single evaluation")
}

// writeResult prints one line per probe, then warnings and errors.
func writeResult(w io.Writer, r EvalResult) {
	for _, p := range r.Probes {
		state := "outside"
		if p.Inside {
			state = "inside"
		}
		fmt.Fprintf(w, "%s: %s\n", p.Label, state)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Message)
	}
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
			continue
		}
		fmt.Fprintf(w, "error: %s\n", strings.TrimSpace(e.Message))
	}
}
