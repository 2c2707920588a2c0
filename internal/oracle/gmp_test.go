//go:build gmp

package oracle

import "testing"

func TestGMPMatchesBig(t *testing.T) {
	t.Parallel()
	compareBackends(t, Big{}, GMP{})
}
