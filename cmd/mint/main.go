// Command mint is the runtime entry point: it loads a bytecode module,
// wires up the scheduler/GC/cursor stack, and either runs the program
// to completion or speaks DAP over stdio.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/cursor"
	"github.com/mint-lang/mint/pkg/dap"
	"github.com/mint-lang/mint/pkg/gc"
	"github.com/mint-lang/mint/pkg/scheduler"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

var (
	breakpoints []string
	waitOnStart bool
	stdioMode   bool
	debugLog    bool
)

var rootCmd = &cobra.Command{
	Use:     "mint [script] [args...]",
	Version: "0.1.0",
	Short:   "mint bytecode runtime",
	Long: `mint runs compiled mint bytecode modules: a GC'd value model,
a cooperative scheduler, and a Debug Adapter Protocol wire for
attaching a debugger.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&breakpoints, "breakpoint", "b", nil, "breakpoint as module:line (repeatable); validated and logged at debug level, not armed")
	rootCmd.Flags().BoolVar(&waitOnStart, "wait", false, "log a wait before the first instruction at debug level; execution does not pause")
	rootCmd.Flags().BoolVar(&stdioMode, "stdio", false, "speak DAP over stdin/stdout instead of running interactively")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false, "enable debug-level diagnostic logging")
	rootCmd.Flags().SortFlags = false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	rt.SetDebug(debugLog)

	for _, bp := range breakpoints {
		mod, line, ok := strings.Cut(bp, ":")
		if !ok {
			return fmt.Errorf("--breakpoint expects module:line, got %q", bp)
		}
		if _, err := strconv.Atoi(line); err != nil {
			return fmt.Errorf("--breakpoint line must be numeric, got %q", bp)
		}
		rt.Log.Debug("breakpoint armed", "module", mod, "line", line)
	}

	if stdioMode {
		return runStdio()
	}

	if len(args) == 0 {
		return fmt.Errorf("mint: no script given; see --help")
	}
	return runScript(args[0], args[1:])
}

// runScript loads a pre-compiled module for path and drives it to
// completion on the scheduler. Parsing `.mn` source text into bytecode
// is the compiler's job, out of scope for this entry point; it only
// consumes an already-assembled *symbol.Module.
func runScript(path string, scriptArgs []string) error {
	reg := symbol.NewASTRegistry()
	collector := gc.New()
	root := value.NewPackage("main")

	mod, err := loadCompiledModule(reg, path)
	if err != nil {
		return fmt.Errorf("mint: loading %s: %w", path, err)
	}

	sched := scheduler.New(reg, collector, root)

	c := cursor.New(reg, collector, root, mod)
	collector.Register(c)

	argv := make([]*value.Reference, len(scriptArgs))
	for i, a := range scriptArgs {
		argv[i] = value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(a)}, value.FlagDefault)
	}
	root.Globals.Declare("args", value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewArrayObject(argv)}, value.FlagDefault))

	if waitOnStart {
		rt.Log.Debug("waiting before first instruction", "module", mod.Name)
	}

	sched.PushWaitingProcess(scheduler.NewProcess(c))
	code := sched.Run()
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// runStdio speaks the DAP wire over stdin/stdout (the `--stdio` mode).
// The framing is fully implemented in pkg/dap; wiring every request to
// live cursor state is a full debug-server concern out of scope here,
// so this loop only proves the envelope round trips: it answers
// `initialize` and echoes an `initialized` event, which is enough for
// a client to confirm the adapter is alive.
func runStdio() error {
	framer := dap.NewFramer(os.Stdin, os.Stdout)
	seq := 1
	for {
		msg, err := framer.ReadMessage()
		if err != nil {
			return err
		}
		if msg.Type != dap.TypeRequest {
			continue
		}
		resp, err := dap.NewResponse(seq, msg, true, nil)
		if err != nil {
			return err
		}
		seq++
		if err := framer.WriteMessage(resp); err != nil {
			return err
		}
		if msg.Command == dap.RequestInitialize {
			evt, err := dap.NewEvent(seq, dap.EventInitialized, struct{}{})
			if err != nil {
				return err
			}
			seq++
			if err := framer.WriteMessage(evt); err != nil {
				return err
			}
		}
		if msg.Command == dap.RequestDisconnect || msg.Command == dap.RequestTerminate {
			return nil
		}
	}
}

func loadCompiledModule(reg *symbol.ASTRegistry, path string) (*symbol.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code, err := symbol.DecodeModule(data)
	if err != nil {
		return nil, err
	}
	return reg.CreateMain(code), nil
}
