// SPDX-License-Identifier: GPL-2.0-or-later

package vec

// Vec2 is a point or direction in the map plane.
type Vec2 struct {
	X, Y float32
}

type Vec3 struct {
	X, Y, Z float32
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec2, frac float32) Vec2 {
	fi := 1 - frac
	return Vec2{
		fi*a.X + frac*b.X,
		fi*a.Y + frac*b.Y,
	}
}
