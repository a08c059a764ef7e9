// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"testing"

	"goedge/cmd"
	"goedge/cvars"
)

func TestWait(t *testing.T) {
	c := CommandBuffer{}
	runCount := 0
	c.SetCommandExecutors([]Efunc{
		func(cb *CommandBuffer, a cmd.Arguments) (bool, error) {
			runCount++
			return true, nil
		}})
	c.AddText("wait\n")
	c.AddText("test\n")
	c.AddText("test\n")
	c.AddText("wait\n")
	c.AddText("test\n")
	c.Execute()
	if runCount != 0 {
		t.Errorf("runCount=%v, want %v", runCount, 0)
	}
	c.Execute()
	if runCount != 2 {
		t.Errorf("runCount=%v, want %v", runCount, 2)
	}
	c.Execute()
	if runCount != 3 {
		t.Errorf("runCount=%v, want %v", runCount, 3)
	}
	if !c.Empty() {
		t.Errorf("buffer not empty after last wait")
	}
}

func TestSplit(t *testing.T) {
	var got []string
	c := New(func(cb *CommandBuffer, a cmd.Arguments) (bool, error) {
		got = append(got, a.Full())
		return true, nil
	})
	c.AddText(`a 1; b "x;y"` + "\nc")
	c.InsertText("first")
	if err := c.Execute(); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "a 1", `b "x;y"`, "c"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCvars(t *testing.T) {
	c := New(Commands, Cvars)
	defer cvars.MaxGaps.Reset()
	c.AddText("sv_maxgaps 12\n")
	if err := c.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := cvars.MaxGaps.Int(); got != 12 {
		t.Errorf("sv_maxgaps = %v, want 12", got)
	}
}
