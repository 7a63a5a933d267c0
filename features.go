package xslua

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// Features lists the CPU extensions the byte scanning paths can use.
type Features struct {
	AVX2  bool // wide memchr / memmem on amd64
	SSSE3 bool // shuffle based class scans on amd64
	SSE42 bool
	ASIMD bool // arm64 NEON
}

// DetectFeatures reports the features of the running CPU.
func DetectFeatures() Features {
	return Features{
		AVX2:  cpu.X86.HasAVX2,
		SSSE3: cpu.X86.HasSSSE3,
		SSE42: cpu.X86.HasSSE42,
		ASIMD: cpu.ARM64.HasASIMD,
	}
}

// String lists the available features, or "generic" when there are none.
func (f Features) String() string {
	var names []string
	if f.AVX2 {
		names = append(names, "avx2")
	}
	if f.SSSE3 {
		names = append(names, "ssse3")
	}
	if f.SSE42 {
		names = append(names, "sse4.2")
	}
	if f.ASIMD {
		names = append(names, "asimd")
	}
	if len(names) == 0 {
		return "generic"
	}
	return strings.Join(names, ",")
}
