// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import "testing"

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in    string
		wantF string
		wantA []QArg
	}{
		{
			in:    `bm_stats`,
			wantF: `bm_stats`,
			wantA: []QArg{{"bm_stats"}},
		},
		{
			in:    `set bm_cellsize 64`,
			wantF: `set bm_cellsize 64`,
			wantA: []QArg{{"set"}, {"bm_cellsize"}, {"64"}},
		},
		{
			in:    ` thing_info  "3" // trailing `,
			wantF: `thing_info  "3" // trailing`,
			wantA: []QArg{{"thing_info"}, {"3"}},
		},
		{
			in:    `say "hello world"`,
			wantF: `say "hello world"`,
			wantA: []QArg{{"say"}, {"hello world"}},
		},
	} {
		arg := Parse(tc.in)
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Arg[%d]=%q, want %q", i, as[i], tc.wantA[i])
			}
		}
	}
}

func TestArgConversions(t *testing.T) {
	a := Parse("x 12 0.5 on")
	if got := a.Argv(1).Int(); got != 12 {
		t.Errorf("Int() = %v, want 12", got)
	}
	if got := a.Argv(2).Float32(); got != 0.5 {
		t.Errorf("Float32() = %v, want 0.5", got)
	}
	if !a.Argv(3).Bool() {
		t.Errorf("Bool() = false, want true")
	}
	if got := a.Argv(9).String(); got != "" {
		t.Errorf("Argv(9) = %q, want empty", got)
	}
}

func TestCommands(t *testing.T) {
	c := New()
	called := 0
	if err := c.Add("Foo", func(a Arguments) error {
		called = a.Argv(1).Int()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("foo", nil); err == nil {
		t.Errorf("Add of duplicate command did not fail")
	}
	ok, err := c.Execute(Parse("FOO 7"))
	if !ok || err != nil || called != 7 {
		t.Errorf("Execute = %v, %v; called = %v", ok, err, called)
	}
	if ok, _ := c.Execute(Parse("bar")); ok {
		t.Errorf("Execute(bar) found a command")
	}
}
