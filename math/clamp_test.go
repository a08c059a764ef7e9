// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClampMin(t *testing.T) {
	v := Clamp(1, 0, 10)
	if v != 1 {
		t.Errorf("Clamp(1,0,10) = %v", v)
	}
}

func TestClampMax(t *testing.T) {
	v := Clamp(1, 100, 10)
	if v != 10 {
		t.Errorf("Clamp(1,100,10) = %v", v)
	}
}

func TestClampVal(t *testing.T) {
	v := Clamp(1, 5, 10)
	if v != 5 {
		t.Errorf("Clamp(1,5,10) = %v", v)
	}
}

func TestAbs(t *testing.T) {
	for _, tc := range []struct {
		in, want float32
	}{
		{-3, 3},
		{0, 0},
		{0.5, 0.5},
	} {
		if got := Abs(tc.in); got != tc.want {
			t.Errorf("Abs(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	for _, tc := range []struct {
		v, d float32
		want int
	}{
		{0, 128, 0},
		{127.9, 128, 0},
		{128, 128, 1},
		{-0.5, 128, -1},
		{-128, 128, -1},
		{-128.5, 128, -2},
	} {
		if got := FloorDiv(tc.v, tc.d); got != tc.want {
			t.Errorf("FloorDiv(%v,%v) = %v, want %v", tc.v, tc.d, got, tc.want)
		}
	}
	if got := FloorDiv(-1e-9, 64.0); got != -1 {
		t.Errorf("FloorDiv(-1e-9,64) = %v, want -1", got)
	}
}
