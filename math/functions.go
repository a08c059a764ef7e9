// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	stdmath "math"
)

type Float interface {
	float32 | float64
}

// FloorDiv returns floor(v / d) as an int, divided in double precision.
// Cell lookups need the floor and not the truncation for coordinates left
// of or below the origin.
func FloorDiv[K Float](v, d K) int {
	return int(stdmath.Floor(float64(v) / float64(d)))
}
