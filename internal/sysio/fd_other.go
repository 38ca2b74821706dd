//go:build !unix

package sysio

import "os"

// FD wraps an unbuffered os.File where raw descriptor calls are unavailable.
type FD struct {
	f *os.File
}

// Read performs a single read.
func (f *FD) Read(p []byte) (int, error) {
	return f.f.Read(p)
}

// Write writes all of p.
func (f *FD) Write(p []byte) (int, error) {
	return f.f.Write(p)
}

var (
	stdin  = &FD{f: os.Stdin}
	stdout = &FD{f: os.Stdout}
	stderr = &FD{f: os.Stderr}
)
