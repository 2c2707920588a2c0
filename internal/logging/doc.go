// Package logging provides a unified logging interface for the kernel
// harness. It abstracts the underlying logging implementation, allowing
// consistent structured logging across the executor, harness and CLI while
// supporting multiple backends.
package logging
