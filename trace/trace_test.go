// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"goedge/blockmap"
	"goedge/bsp"
	"goedge/math/vec"
	"goedge/rand"
)

func mkLine(x1, y1, x2, y2 float32) bsp.Line {
	return bsp.Line{
		V1: vec.Vec2{X: x1, Y: y1},
		V2: vec.Vec2{X: x2, Y: y2},
		DX: x2 - x1,
		DY: y2 - y1,
	}
}

// fixture has three lines crossed by the trace (0,0)-(100,0) at 0.8, 0.2
// and 0.5. The first one is found in the first cell of the walk.
func fixture(t *testing.T) (*Tracer, *blockmap.Blockmap, []bsp.Line) {
	t.Helper()
	lines := []bsp.Line{
		mkLine(0, -4, 160, 4),
		mkLine(20, -10, 20, 10),
		mkLine(50, -10, 50, 10),
	}
	bounds := bsp.BBox{Min: vec.Vec2{X: -64, Y: -48}, Max: vec.Vec2{X: 192, Y: 64}}
	bm, err := blockmap.Build(lines, blockmap.Options{CellSize: 32, Bounds: &bounds})
	if err != nil {
		t.Fatal(err)
	}
	return New(bm, lines), bm, lines
}

func TestTraceFromBoundary(t *testing.T) {
	lines := []bsp.Line{
		mkLine(128, 0, 128, 128),
		mkLine(0, 0, 0, 128),
	}
	bm, err := blockmap.Build(lines, blockmap.Options{CellSize: 128})
	if err != nil {
		t.Fatal(err)
	}
	tr := New(bm, lines)
	for _, tc := range []struct {
		name           string
		ax, ay, bx, by float32
	}{
		{"forward", 128, 64, 250, 64},
		{"backward", 128, 64, 10, 64},
		{"backward diagonal", 128, 64, 10, 10},
	} {
		got, ok := collect(tr, tc.ax, tc.ay, tc.bx, tc.by, Lines)
		if !ok || len(got) != 1 || got[0].line != 0 || got[0].frac != 0 {
			t.Errorf("%s: got %v, %v, want line 0 at 0", tc.name, got, ok)
		}
	}
	// starting on a row boundary going down
	if got := walked(tr, 64, 128, 64, 10); len(got) != 2 || got[0] != (cell{0, 1}) || got[1] != (cell{0, 0}) {
		t.Errorf("walk down from a row boundary = %v, want [{0 1} {0 0}]", got)
	}
}

type hit struct {
	frac  float32
	line  bsp.LineID
	thing blockmap.ThingID
}

func collect(tr *Tracer, ax, ay, bx, by float32, flags Flags) ([]hit, bool) {
	var got []hit
	ok := tr.Trace(ax, ay, bx, by, flags, func(in *Intercept) bool {
		got = append(got, hit{in.Frac, in.Line, in.Thing})
		return true
	})
	return got, ok
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestTraceOrder(t *testing.T) {
	tr, _, _ := fixture(t)
	for _, tc := range []struct {
		name           string
		ax, ay, bx, by float32
		lines          []bsp.LineID
		fracs          []float32
	}{
		{"forward", 0, 0, 100, 0, []bsp.LineID{1, 2, 0}, []float32{0.2, 0.5, 0.8}},
		{"backward", 100, 0, 0, 0, []bsp.LineID{0, 2, 1}, []float32{0.2, 0.5, 0.8}},
		{"short", 0, 0, 40, 0, []bsp.LineID{1}, []float32{0.5}},
	} {
		got, ok := collect(tr, tc.ax, tc.ay, tc.bx, tc.by, Lines)
		if !ok {
			t.Errorf("%s: Trace returned false", tc.name)
		}
		if len(got) != len(tc.lines) {
			t.Errorf("%s: got %v, want lines %v", tc.name, got, tc.lines)
			continue
		}
		for i, h := range got {
			if h.line != tc.lines[i] || !near(h.frac, tc.fracs[i]) || h.thing != blockmap.NoThing {
				t.Errorf("%s: intercept %d = %+v, want line %d at %v", tc.name, i, h, tc.lines[i], tc.fracs[i])
			}
		}
	}
}

func TestTraceEarlyExit(t *testing.T) {
	tr, _, _ := fixture(t)
	n := 0
	ok := tr.Trace(0, 0, 100, 0, Lines, func(in *Intercept) bool {
		n++
		return n < 2
	})
	if ok || n != 2 {
		t.Errorf("Trace = %v after %d calls, want false after 2", ok, n)
	}
}

func TestTraceDegenerate(t *testing.T) {
	tr, _, _ := fixture(t)
	traces := testutil.ToFloat64(tracesTotal)
	if got, ok := collect(tr, 20, 0, 20, 0, Lines|Things); !ok || len(got) != 0 {
		t.Errorf("zero length trace = %v, %v", got, ok)
	}
	if got, ok := collect(tr, -1000, -1000, -900, -800, Lines|Things); !ok || len(got) != 0 {
		t.Errorf("outside trace = %v, %v", got, ok)
	}
	if got, ok := collect(tr, -1000, 500, 1000, 500, Lines|Things); !ok || len(got) != 0 {
		t.Errorf("trace passing the grid = %v, %v", got, ok)
	}
	if d := testutil.ToFloat64(tracesTotal) - traces; d != 0 {
		t.Errorf("%v traces walked the grid", d)
	}
	// starting far outside still finds everything inside
	got, ok := collect(tr, -5000, 0, 100, 0, Lines)
	if !ok || len(got) != 3 {
		t.Errorf("clipped trace = %v, %v", got, ok)
	}
}

func TestTraceEarlyOut(t *testing.T) {
	tr, _, lines := fixture(t)
	lines[2].Back = bsp.NoSector
	called := false
	if tr.Trace(0, 0, 100, 0, Lines|EarlyOut, func(*Intercept) bool {
		called = true
		return true
	}) {
		t.Errorf("EarlyOut trace through one sided line = true")
	}
	if called {
		t.Errorf("visitor called after early out")
	}
	// not reached
	if got, ok := collect(tr, 0, 0, 40, 0, Lines|EarlyOut); !ok || len(got) != 1 {
		t.Errorf("short EarlyOut trace = %v, %v", got, ok)
	}
}

func TestTraceThings(t *testing.T) {
	tr, bm, _ := fixture(t)
	if err := bm.LinkThing(0, 60, 0, 10); err != nil {
		t.Fatal(err)
	}
	// centered one row above the trace but reaching down across it
	if err := bm.LinkThing(1, 60, 30, 40); err != nil {
		t.Fatal(err)
	}
	// missed
	if err := bm.LinkThing(2, 30, 40, 10); err != nil {
		t.Fatal(err)
	}
	got, ok := collect(tr, 0, 0, 100, 0, Things)
	if !ok || len(got) != 2 {
		t.Fatalf("things = %v, %v", got, ok)
	}
	if got[0].thing != 0 || !near(got[0].frac, 0.6) || got[0].line != bsp.NoLine {
		t.Errorf("first thing = %+v, want 0 at 0.6", got[0])
	}
	if got[1].thing != 1 || !near(got[1].frac, 0.9) {
		t.Errorf("second thing = %+v, want 1 at 0.9", got[1])
	}

	got, _ = collect(tr, 0, 0, 100, 0, Lines|Things)
	want := []float32{0.2, 0.5, 0.6, 0.8, 0.9}
	if len(got) != len(want) {
		t.Fatalf("lines and things = %v", got)
	}
	for i := range want {
		if !near(got[i].frac, want[i]) {
			t.Errorf("intercept %d at %v, want %v", i, got[i].frac, want[i])
		}
	}

	// the diagonal depends on the direction of the trace
	got, _ = collect(tr, 60, -50, 60, 50, Things)
	if len(got) != 2 || got[0].thing != 0 {
		t.Errorf("vertical trace = %v", got)
	}
}

func TestInterceptPoint(t *testing.T) {
	tr, _, _ := fixture(t)
	tr.Trace(0, 0, 100, 0, Lines, func(in *Intercept) bool {
		p := in.Point()
		if !in.IsLine() || !near(p.Y, 0) || !near(p.X, in.Frac*100) {
			t.Errorf("Point() = %v at frac %v", p, in.Frac)
		}
		return true
	})
}

func TestNestedTrace(t *testing.T) {
	tr, _, _ := fixture(t)
	outer := 0
	tr.Trace(0, 0, 100, 0, Lines, func(in *Intercept) bool {
		outer++
		frac := in.Frac
		got, ok := collect(tr, 100, 0, 0, 0, Lines)
		if !ok || len(got) != 3 {
			t.Errorf("nested trace = %v, %v", got, ok)
		}
		if in.Frac != frac {
			t.Errorf("nested trace changed the outer intercept")
		}
		return true
	})
	if outer != 3 {
		t.Errorf("outer trace saw %d intercepts", outer)
	}
}

func walked(tr *Tracer, ax, ay, bx, by float32) []cell {
	div := bsp.DivLine{X: ax, Y: ay, DX: bx - ax, DY: by - ay}
	t0, t1, ok := clip(div, tr.bm.Bounds())
	if !ok {
		return nil
	}
	var got []cell
	tr.walk(div, t0, t1, func(cx, cy int) bool {
		got = append(got, cell{cx, cy})
		return true
	})
	return got
}

func TestWalkCorners(t *testing.T) {
	lines := []bsp.Line{mkLine(0, 0, 64, 64)}
	bm, err := blockmap.Build(lines, blockmap.Options{CellSize: 32})
	if err != nil {
		t.Fatal(err)
	}
	tr := New(bm, lines)
	got := walked(tr, 0, 0, 64, 64)
	want := []cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("walk = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("walk = %v, want %v", got, want)
			break
		}
	}
}

func TestWalkCoversSegment(t *testing.T) {
	lines := []bsp.Line{mkLine(0, 0, 1000, 1000)}
	bm, err := blockmap.Build(lines, blockmap.Options{CellSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	tr := New(bm, lines)
	g := rand.New(9)
	for i := 0; i < 300; i++ {
		ax, ay := g.Float32()*1000, g.Float32()*1000
		bx, by := g.Float32()*1000, g.Float32()*1000
		if i%10 == 0 {
			// near axis aligned
			by = ay + g.Float32()
		}
		cells := walked(tr, ax, ay, bx, by)
		seen := map[cell]int{}
		for j, c := range cells {
			seen[c]++
			if j > 0 {
				p := cells[j-1]
				if d := abs(c.x-p.x) + abs(c.y-p.y); d == 0 || d > 2 {
					t.Fatalf("walk jumps from %v to %v", p, c)
				}
			}
		}
		for c, n := range seen {
			if n > 1 {
				t.Fatalf("cell %v walked %d times", c, n)
			}
		}
		for k := 0; k <= 100; k++ {
			f := float64(k) / 100
			px := float64(ax) + f*(float64(bx)-float64(ax))
			py := float64(ay) + f*(float64(by)-float64(ay))
			c := cell{int(math.Floor(px / 64)), int(math.Floor(py / 64))}
			if seen[c] == 0 {
				t.Fatalf("trace (%v,%v)-(%v,%v): point (%v,%v) in unvisited cell %v", ax, ay, bx, by, px, py, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
