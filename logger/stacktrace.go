package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// captureStacktrace formats up to depth frames, skipping the given number of
// leading frames. Runtime-internal frames are filtered out.
func captureStacktrace(skip, depth int) string {
	pcs := make([]uintptr, depth+skip)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	count := 0
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			if count > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("%s\n\t%s:%d", frame.Function, frame.File, frame.Line))
			count++
		}
		if !more || count >= depth {
			break
		}
	}
	return sb.String()
}
