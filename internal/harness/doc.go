// Package harness runs the kernels of a fast backend against reference
// backends (Verify) and times every backend on identical inputs (Bench).
// Progress flows to a ProgressReporter over a channel and results to a
// Presenter, so the package holds no presentation code.
package harness
