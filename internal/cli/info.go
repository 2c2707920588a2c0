package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/eint"
	"github.com/agbru/fasteint/internal/sysmon"
	"github.com/agbru/fasteint/internal/ui"
)

// PrintInfo describes the host, the instruction set extensions the
// kernels can benefit from, and the registered backends.
func PrintInfo(host sysmon.HostInfo, features eint.CPUFeatures, reg *backend.Registry, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "%s\n", styles.Header.Render("--- Host ---"))
	writeHost(host, out)

	fmt.Fprintf(out, "%s\n", styles.Header.Render("--- CPU Features ---"))
	fmt.Fprintf(out, "Architecture: %s%s%s\n", ui.ColorCyan(), features.Arch, ui.ColorReset())
	fmt.Fprintf(out, "Extensions:   %s\n", features.String())
	fmt.Fprintf(out, "SIMD level:   %s\n", features.SIMDLevel)
	if !features.BMI2 || !features.ADX {
		fmt.Fprintf(out, "%sNote:%s MULX/ADCX unavailable, carry chains use the baseline instruction set.\n",
			ui.ColorYellow(), ui.ColorReset())
	}

	fmt.Fprintf(out, "\n%s\n", styles.Header.Render("--- Backends ---"))
	fmt.Fprintf(out, "%s\n", strings.Join(reg.List(), ", "))
}
