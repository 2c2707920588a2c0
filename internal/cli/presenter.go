package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/format"
	"github.com/agbru/fasteint/internal/harness"
	"github.com/agbru/fasteint/internal/sysmon"
	"github.com/agbru/fasteint/internal/ui"
)

// CLIPresenter renders harness results as aligned, colorized tables.
type CLIPresenter struct {
	// Verbose adds the full error text to failing rows.
	Verbose bool
}

var _ harness.Presenter = CLIPresenter{}

// PresentVerify prints one row per verification task.
func (p CLIPresenter) PresentVerify(results []harness.VerifyResult, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", styles.Header.Render("--- Verification Summary ---"))

	rows := [][]string{{"Kernel", "Check", "Reference", "Elements", "Duration", "Status"}}
	for _, r := range results {
		ref := r.Reference
		if ref == "" {
			ref = "-"
		}
		rows = append(rows, []string{
			ui.ColorBlue() + string(r.Op) + ui.ColorReset(),
			string(r.Check),
			ref,
			format.FormatNumberString(fmt.Sprint(r.Elements)),
			ui.ColorYellow() + durationCell(r.Duration) + ui.ColorReset(),
			p.status(r.Err),
		})
	}
	writeTable(out, rows)
}

// PresentBench prints the host header and one row per kernel and backend.
func (p CLIPresenter) PresentBench(results []harness.BenchResult, host sysmon.HostInfo, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", styles.Header.Render("--- Benchmark Results ---"))
	writeHost(host, out)

	rows := [][]string{{"Kernel", "Backend", "Batch", "Time/elem", "Rate", "Allocs/call", "GCs", "Status"}}
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{
				ui.ColorBlue() + string(r.Op) + ui.ColorReset(), r.Backend, "-", "-", "-", "-", "-", p.status(r.Err),
			})
			continue
		}
		rows = append(rows, []string{
			ui.ColorBlue() + string(r.Op) + ui.ColorReset(),
			r.Backend,
			fmt.Sprint(r.Batch),
			ui.ColorYellow() + format.FormatNsPerElement(r.NsPerElement) + ui.ColorReset(),
			format.FormatRate(int64(r.Batch)*int64(r.Iterations), r.Duration),
			fmt.Sprintf("%.1f", r.AllocsPerCall),
			fmt.Sprint(r.GCs),
			p.status(nil),
		})
	}
	writeTable(out, rows)
}

func writeHost(h sysmon.HostInfo, out io.Writer) {
	model := h.ModelName
	if model == "" {
		model = "unknown CPU"
	}
	fmt.Fprintf(out, "Host: %s%s%s (%d physical / %d logical cores", ui.ColorCyan(), model, ui.ColorReset(),
		h.PhysicalCores, h.LogicalCores)
	if h.MHz > 0 {
		fmt.Fprintf(out, ", %.0f MHz", h.MHz)
	}
	fmt.Fprintf(out, ")\n")
	fmt.Fprintf(out, "Platform: %s/%s, %s", h.GOOS, h.GOARCH, h.GoVersion)
	if h.TotalMemory > 0 {
		fmt.Fprintf(out, ", %s RAM", format.FormatBytes(h.TotalMemory))
	}
	fmt.Fprintf(out, "\n")
	if h.CarryChain != "" {
		fmt.Fprintf(out, "Carry chain: %s\n", h.CarryChain)
	}
	fmt.Fprintf(out, "\n")
}

func (p CLIPresenter) status(err error) string {
	styles := ui.CurrentStyles()
	if err == nil {
		return styles.Pass.Render(ui.ColorGreen() + "✅ OK" + ui.ColorReset())
	}
	label := "❌ FAIL"
	if apperrors.IsContextError(err) {
		label = "⚠ ABORTED"
	}
	if p.Verbose {
		label = fmt.Sprintf("%s (%v)", label, err)
	}
	return styles.Fail.Render(ui.ColorRed() + label + ui.ColorReset())
}

func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// writeTable pads every column to its widest cell. Widths are measured
// with lipgloss so that ANSI color codes do not count.
func writeTable(out io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for r, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if r == 0 {
				cell = ui.ColorUnderline() + cell + ui.ColorReset()
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(padRight("", widths[i]-lipgloss.Width(cell)+3))
			}
		}
		fmt.Fprintln(out, b.String())
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// HandleError reports err on out and returns the exit code to use.
func (CLIPresenter) HandleError(err error, timeout time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, timeout, out)
}

// DisplayMemoryStats shows heap figures gathered around a run.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
