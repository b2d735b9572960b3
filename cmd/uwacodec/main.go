// Command uwacodec is the schema analyzer CLI: given a schema source file,
// it prints a human-readable per-field bit breakdown, the total bits and
// bytes under each wire mode, and a comparison to the schema's declared
// max_bytes. It has no flags that affect wire behavior - analysis only.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/oceancomm/uwacodec"
	"github.com/oceancomm/uwacodec/internal/schema"
	"github.com/oceancomm/uwacodec/internal/schemaio"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "uwacodec: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("uwacodec analyze", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "include per-field kind and bit offset detail")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: uwacodec analyze [flags] <schema-file.yaml|.json>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if len(args) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "analyze":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			fs.Usage()
			return fmt.Errorf("analyze requires exactly one schema file argument")
		}
		return analyze(fs.Arg(0), *verbose)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func analyze(path string, verbose bool) error {
	spec, err := schemaio.Load(path)
	if err != nil {
		return err
	}

	descriptor, err := schema.Compile(spec)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	report := uwacodec.Analyze(descriptor)
	printReport(os.Stdout, descriptor, report, verbose)
	return nil
}

func printReport(w *os.File, m uwacodec.MessageDescriptor, r uwacodec.SizeReport, verbose bool) {
	fmt.Fprintf(w, "Message id=%d, %d field(s)\n", m.ID, len(m.Fields))
	fmt.Fprintln(w, "--------------------------------------------------")

	var offset uint
	for _, f := range r.Fields {
		if verbose {
			fmt.Fprintf(w, "  %-20s %-12s %3d bits  (offset %d)\n", f.Name, f.Kind, f.Bits, offset)
		} else {
			fmt.Fprintf(w, "  %-20s %3d bits\n", f.Name, f.Bits)
		}
		offset += f.Bits
	}

	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "body:              %5d bits  (%d bytes)\n", r.BodyBits, r.BodyBytes)
	fmt.Fprintf(w, "mode 1 (point-to-point): %d bytes\n", r.ModePointToPointBytes)
	fmt.Fprintf(w, "mode 2 (self-describing): %d bytes (varid %d byte(s))\n", r.ModeSelfDescribingBytes, r.VaridBytes)
	fmt.Fprintf(w, "mode 3 (routed):          %d bytes\n", r.ModeRoutedBytes)

	if r.MaxBytes > 0 {
		status := "OK"
		if r.OverBudget {
			status = "OVER BUDGET"
		}
		fmt.Fprintf(w, "max_bytes:          %5d  [%s]\n", r.MaxBytes, status)
	}
}
