//go:build unix

package sysio

import (
	"golang.org/x/sys/unix"
)

// FD is a raw file descriptor read and written with direct system calls.
type FD struct {
	fd int
}

// Read performs a single read system call.
func (f *FD) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(f.fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// Write writes all of p, issuing further system calls only after a short write.
func (f *FD) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(f.fd, p[written:])
		if err == unix.EINTR {
			continue
		}
		if n > 0 {
			written += n
		}
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

var (
	stdin  = &FD{fd: 0}
	stdout = &FD{fd: 1}
	stderr = &FD{fd: 2}
)
