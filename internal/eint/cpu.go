package eint

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// SIMDLevel is the widest vector extension reported by the host CPU.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDNEON
	SIMDAVX2
	SIMDAVX512
)

// String returns the display name of the level.
func (l SIMDLevel) String() string {
	switch l {
	case SIMDNone:
		return "none"
	case SIMDNEON:
		return "NEON"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// CPUFeatures describes the instruction set extensions relevant to the
// carry-chain kernels. BMI2 supplies MULX and ADX supplies ADCX/ADOX, which
// the compiler uses when lowering math/bits on amd64.
type CPUFeatures struct {
	Arch      string
	BMI2      bool
	ADX       bool
	AVX2      bool
	AVX512    bool
	ASIMD     bool
	SIMDLevel SIMDLevel
}

var features = detectCPUFeatures()

func detectCPUFeatures() CPUFeatures {
	f := CPUFeatures{
		Arch:   runtime.GOARCH,
		BMI2:   cpu.X86.HasBMI2,
		ADX:    cpu.X86.HasADX,
		AVX2:   cpu.X86.HasAVX2,
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
		ASIMD:  cpu.ARM64.HasASIMD,
	}
	switch {
	case f.AVX512:
		f.SIMDLevel = SIMDAVX512
	case f.AVX2:
		f.SIMDLevel = SIMDAVX2
	case f.ASIMD:
		f.SIMDLevel = SIMDNEON
	}
	return f
}

// GetCPUFeatures returns the features detected at package initialization.
func GetCPUFeatures() CPUFeatures { return features }

// CarryChain names the extensions available to the carry-chain kernels.
func (f CPUFeatures) CarryChain() string {
	switch {
	case f.BMI2 && f.ADX:
		return "MULX+ADCX"
	case f.BMI2:
		return "MULX"
	case f.ADX:
		return "ADCX"
	default:
		return "baseline"
	}
}

// String renders the feature set on one line.
func (f CPUFeatures) String() string {
	var flags []string
	if f.BMI2 {
		flags = append(flags, "BMI2")
	}
	if f.ADX {
		flags = append(flags, "ADX")
	}
	if f.AVX2 {
		flags = append(flags, "AVX2")
	}
	if f.AVX512 {
		flags = append(flags, "AVX-512")
	}
	if f.ASIMD {
		flags = append(flags, "ASIMD")
	}
	if len(flags) == 0 {
		flags = append(flags, "baseline")
	}
	return fmt.Sprintf("%s [%s] simd=%s", f.Arch, strings.Join(flags, " "), f.SIMDLevel)
}
