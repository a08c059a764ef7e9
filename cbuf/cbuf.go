// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers console text and runs it one line at a time. A
// "wait" line defers the rest of the buffer to the next Execute call, so a
// script given on the command line can be paced by simulation ticks.
package cbuf

import (
	"strings"
)

type CommandBuffer struct {
	buf       string
	wait      bool
	executors executors
}

func New(ex ...Efunc) *CommandBuffer {
	return &CommandBuffer{executors: ex}
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

// Execute runs buffered lines until the buffer is empty or a wait is seen.
func (c *CommandBuffer) Execute() error {
	for len(c.buf) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(c.buf); i++ {
			switch c.buf[i] {
			case '"':
				quote = !quote
			case ';':
				if !quote {
					break LineLoop
				}
			case '\n':
				break LineLoop
			}
		}
		line := c.buf[:i]
		if i < len(c.buf) {
			i++
		}
		c.buf = c.buf[i:]
		if strings.TrimSpace(line) == "wait" {
			c.wait = true
		} else if err := c.executors.execute(c, line); err != nil {
			return err
		}
		if c.wait {
			c.wait = false
			return nil
		}
	}
	return nil
}

func (c *CommandBuffer) Empty() bool {
	return len(c.buf) == 0
}

func (c *CommandBuffer) AddText(text string) {
	c.buf = c.buf + text
}

func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}
