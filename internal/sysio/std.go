package sysio

// Stdin returns the process's standard input descriptor.
func Stdin() *FD { return stdin }

// Stdout returns the process's standard output descriptor.
func Stdout() *FD { return stdout }

// Stderr returns the process's standard error descriptor.
func Stderr() *FD { return stderr }
