/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
)

// humanReadableSize formats a byte count with SI units, as used in the
// SERVE log lines.
func humanReadableSize(bytes int64) string {
	const unit int64 = 1000

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes) / float64(unit)
	prefixes := "kMGTPE"

	exp := 0
	for value >= float64(unit) && exp < len(prefixes)-1 {
		value /= float64(unit)
		exp++
	}

	return fmt.Sprintf("%.1f %cB", value, prefixes[exp])
}
