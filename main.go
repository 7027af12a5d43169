package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wheelcc/wheelcc/internal/asmgen"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/cparse"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/gasemit"
	"github.com/wheelcc/wheelcc/internal/ice"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/optimize"
	"github.com/wheelcc/wheelcc/internal/stackfix"
	"github.com/wheelcc/wheelcc/internal/tac"
	"github.com/wheelcc/wheelcc/internal/tacbuild"
)

var command = &cobra.Command{
	Use:   "wheelcc",
	Short: "a C-subset-to-x86-64/GAS compiler core",
}

var compileCmd = &cobra.Command{
	Use:   "compile <source.c> [include-dirs...]",
	Short: "lower a TAC program (or a C translation unit's declarations) to x86-64 GAS",
	Args:  cobra.ArbitraryArgs,
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().Uint8("debug", 0, "debug trace level")
	compileCmd.Flags().Int("optim1", 0, "optim1 bitmask: bit0 constant folding, bit1 unreachable-code elim, bit2 copy propagation, bit3 dead-store elim (0-15)")
	compileCmd.Flags().Int("optim2", 0, "optim2 code; accepted and validated, always runs as 0/off (no register allocation)")
	compileCmd.Flags().String("tac", "", "load the TacProgram from a .tac.json fixture instead of lowering a C source file's statements")
	compileCmd.Flags().StringP("output", "o", "", "output .s path (defaults to the source name with its extension swapped)")
	command.AddCommand(compileCmd)
}

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if iceErr, ok := ice.Recover(r); ok {
				err = iceErr
				return
			}
			panic(r)
		}
	}()

	debug, _ := cmd.Flags().GetUint8("debug")
	optim1, _ := cmd.Flags().GetInt("optim1")
	optim2, _ := cmd.Flags().GetInt("optim2")
	tacPath, _ := cmd.Flags().GetString("tac")
	output, _ := cmd.Flags().GetString("output")

	if optim1 < 0 || optim1 > 15 {
		return fmt.Errorf("--optim1 must be in [0,15], got %d", optim1)
	}
	if optim2 < 0 || optim2 > 2 {
		return fmt.Errorf("--optim2 must be in [0,2], got %d", optim2)
	}
	// optim2 (register allocation) is a non-goal of this core; it is
	// validated above and then always executes as "off".

	idents := ident.NewTable()
	fe := fetype.NewFrontEndSymbols()

	var source string
	var includeDirs []string
	if len(args) > 0 {
		source = args[0]
		includeDirs = args[1:]
	}

	if source != "" {
		parsed, err := cparse.Parse(source, includeDirs, idents)
		if err != nil {
			return err
		}
		fe = parsed
	}

	var prog *tac.Program
	switch {
	case tacPath != "":
		prog, err = tacbuild.Load(tacPath, idents, fe)
		if err != nil {
			return err
		}
	case source != "":
		return fmt.Errorf("no --tac fixture given: a full C-statement lowering pass is not implemented, " +
			"supply --tac=path.tac.json alongside the C source for its declarations")
	default:
		return fmt.Errorf("supply a C source file, --tac=path.tac.json, or both")
	}

	if debug > 0 {
		fmt.Fprintf(os.Stderr, "wheelcc: %d static(s), %d function(s)\n", len(prog.StaticVars), len(prog.Functions))
	}

	mask := optimize.Mask(optim1)
	for _, fn := range prog.Functions {
		optimize.Run(fn, fe, mask)
	}

	asmProg, err := asmgen.Generate(idents, fe, prog)
	if err != nil {
		return err
	}

	stackfix.Fix(asmProg, asmtype.Derive(fe))

	text := gasemit.Emit(asmProg, idents)

	if output == "" {
		output = defaultOutputPath(source, tacPath)
	}
	return os.WriteFile(output, []byte(text), 0o644)
}

// defaultOutputPath derives a `.s` path from whichever input was given.
func defaultOutputPath(source, tacPath string) string {
	base := source
	if base == "" {
		base = tacPath
	}
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[:idx]
	}
	if base == "" {
		base = "out"
	}
	return base + ".s"
}
