//go:build gmp

package backend

import "github.com/agbru/fasteint/internal/oracle"

func init() {
	optional = append(optional, oracle.GMP{})
}
