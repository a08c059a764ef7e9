// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strconv"
	"strings"
	"unicode"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed input
	full string
}

// Argv returns the i-th argument or an empty one if out of range.
func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		return QArg{}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// Parse splits a console line into words. Double quotes group words, a
// '//' outside of quotes starts a comment.
func Parse(s string) (args Arguments) {
	args.full = strings.TrimFunc(s, unicode.IsSpace)
	args.args = []QArg{}

	var word strings.Builder
	inWord := false
	quoted := false
	flush := func() {
		if inWord {
			args.args = append(args.args, QArg{word.String()})
			word.Reset()
			inWord = false
		}
	}
	in := args.full
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case quoted:
			if c == '"' {
				quoted = false
				flush()
				continue
			}
			word.WriteByte(c)
		case c == '"':
			flush()
			quoted = true
			inWord = true
		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			flush()
			return
		case c <= ' ':
			flush()
		default:
			word.WriteByte(c)
			inWord = true
		}
	}
	flush()
	return
}
