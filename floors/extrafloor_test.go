// SPDX-License-Identifier: GPL-2.0-or-later

package floors

import (
	"testing"

	"github.com/pkg/errors"

	"goedge/bsp"
)

func TestExtraFloorFits(t *testing.T) {
	sec := &bsp.Sector{Floor: 0, Ceil: 256}
	mustAdd(t, sec, solid(64, 96))
	mustAdd(t, sec, solid(128, 128))
	for _, tc := range []struct {
		z1, z2 float32
		want   Fit
	}{
		{0, 64, FitOk},
		{96, 120, FitOk},
		{200, 256, FitOk},
		{200, 257, FitStuckInCeiling},
		{-1, 10, FitStuckInFloor},
		{80, 100, FitStuckInOtherFloor},
		{50, 110, FitStuckInOtherFloor},
		{70, 70, FitStuckInOtherFloor},
		{120, 140, FitStuckInOtherFloor},
		{128, 128, FitStuckInOtherFloor},
		{129, 129, FitOk},
	} {
		if got := ExtraFloorFits(sec, tc.z1, tc.z2); got != tc.want {
			t.Errorf("ExtraFloorFits(%v,%v) = %v, want %v", tc.z1, tc.z2, got, tc.want)
		}
	}
}

func TestAddExtraFloorErrors(t *testing.T) {
	sec := &bsp.Sector{Floor: 0, Ceil: 128}
	mustAdd(t, sec, solid(32, 64))

	err := AddExtraFloor(sec, solid(48, 80))
	if !errors.Is(err, ErrStuckInOtherFloor) {
		t.Errorf("overlapping floor: %v", err)
	}
	err = AddExtraFloor(sec, solid(100, 140))
	if !errors.Is(err, ErrStuckInCeiling) {
		t.Errorf("floor through ceiling: %v", err)
	}
	err = AddExtraFloor(sec, &bsp.ExtraFloor{Bottom: 90, Top: 100, Control: control})
	if !errors.Is(err, ErrBadExtraFloor) {
		t.Errorf("thin floor with height: %v", err)
	}
	err = AddExtraFloor(sec, &bsp.ExtraFloor{Bottom: 90, Top: 90})
	if !errors.Is(err, ErrBadExtraFloor) {
		t.Errorf("floor without control: %v", err)
	}
	// liquids may overlap anything
	water := &bsp.ExtraFloor{Bottom: 0, Top: 100, Flags: bsp.ExtraLiquid | bsp.ExtraThick, Control: control}
	if err := AddExtraFloor(sec, water); err != nil {
		t.Errorf("liquid: %v", err)
	}
	if len(sec.Solid) != 1 || len(sec.Liquid) != 1 {
		t.Errorf("chains: %d solid, %d liquid", len(sec.Solid), len(sec.Liquid))
	}
}

func TestAddExtraFloorKeepsOrder(t *testing.T) {
	sec := &bsp.Sector{Floor: 0, Ceil: 512}
	for _, b := range []float32{300, 100, 200, 0} {
		mustAdd(t, sec, solid(b, b+50))
	}
	for i := 1; i < len(sec.Solid); i++ {
		if sec.Solid[i-1].Bottom >= sec.Solid[i].Bottom {
			t.Fatalf("chain not sorted at %d: %v >= %v", i, sec.Solid[i-1].Bottom, sec.Solid[i].Bottom)
		}
	}
}

func TestFloodAndPropsAt(t *testing.T) {
	sec := &bsp.Sector{Floor: 0, Ceil: 256, Props: bsp.Props{Light: 200, Gravity: 1}}
	lamp := &bsp.Props{Light: 40, Special: 9}
	dark := solid(160, 176)
	dark.Control = lamp
	dark.Flags |= bsp.ExtraFloodLight
	mustAdd(t, sec, dark)
	slime := &bsp.Props{Light: 255, Special: 5, Viscosity: 0.8}
	pool := &bsp.ExtraFloor{Bottom: 0, Top: 32, Flags: bsp.ExtraLiquid | bsp.ExtraThick, Control: slime}
	mustAdd(t, sec, pool)

	if p := PropsAt(sec, 200); p != &sec.Props {
		t.Errorf("above everything: %+v, want sector props", *p)
	}
	p := PropsAt(sec, 100)
	if p.Light != 40 || p.Special != 0 || p.Gravity != 1 {
		t.Errorf("below lamp floor: %+v", *p)
	}
	p = PropsAt(sec, 10)
	if p.Light != 40 || p.Special != 5 || p.Viscosity != 0.8 {
		t.Errorf("inside slime: %+v", *p)
	}
}
