// Package cliio defines the input/output streams the operator CLI's
// commands write through, so tests can substitute buffers for a terminal.
package cliio

import (
	"io"
	"os"
)

// IOStreams holds the three streams a cobra command reads from and writes
// to. Production code builds one over os.Stdin/Stdout/Stderr; tests build
// one over bytes.Buffers.
type IOStreams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// System returns the IOStreams wired to the process's real terminal streams.
func System() *IOStreams {
	return &IOStreams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}
