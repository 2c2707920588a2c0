package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/config"
	"github.com/agbru/fasteint/internal/ui"
)

// PrintExecutionConfig displays the configuration a run will use.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Mode %s%s%s over batches of %s%d%s elements, %d iterations, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Mode, ui.ColorReset(), ui.ColorMagenta(), cfg.BatchSize, ui.ColorReset(),
		cfg.Iterations, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	workers := "GOMAXPROCS"
	if cfg.Workers > 0 {
		workers = fmt.Sprint(cfg.Workers)
	}
	fmt.Fprintf(out, "Parallelism: threshold=%s%d%s elements, workers=%s%s%s. Seed: %s%#x%s.\n",
		ui.ColorCyan(), cfg.Threshold, ui.ColorReset(), ui.ColorCyan(), workers, ui.ColorReset(),
		ui.ColorCyan(), cfg.Seed, ui.ColorReset())
}

// PrintExecutionMode lists the kernels and backends a run covers.
func PrintExecutionMode(ops []backend.Op, sel backend.Selection, out io.Writer) {
	names := make([]string, 0, len(sel.Kernels)+len(sel.Shifters))
	for _, k := range sel.Kernels {
		names = append(names, k.Name())
	}
	for _, s := range sel.Shifters {
		names = append(names, s.Name()+" (shift only)")
	}
	opNames := make([]string, len(ops))
	for i, op := range ops {
		opNames[i] = string(op)
	}
	fmt.Fprintf(out, "Kernels: %s%s%s.\n", ui.ColorGreen(), strings.Join(opNames, ", "), ui.ColorReset())
	fmt.Fprintf(out, "Backends: %s%s%s.\n", ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
