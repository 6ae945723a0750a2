//go:build windows

package stdlib

import (
	"syscall"
	"unsafe"
)

// time.Now has a coarse tick on older Windows; clock() reads the
// performance counter instead.
var (
	kernel32      = syscall.NewLazyDLL("kernel32.dll")
	procCounter   = kernel32.NewProc("QueryPerformanceCounter")
	procFrequency = kernel32.NewProc("QueryPerformanceFrequency")

	counterHz    int64
	counterStart int64
)

func init() {
	procFrequency.Call(uintptr(unsafe.Pointer(&counterHz)))
	procCounter.Call(uintptr(unsafe.Pointer(&counterStart)))
}

func hiresSeconds() float64 {
	var now int64
	procCounter.Call(uintptr(unsafe.Pointer(&now)))
	return float64(now-counterStart) / float64(counterHz)
}
