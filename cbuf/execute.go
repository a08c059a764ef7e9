// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"log/slog"

	"goedge/cmd"
	"goedge/conlog"
	"goedge/cvar"
)

// Efunc reports whether it handled the line.
type Efunc func(*CommandBuffer, cmd.Arguments) (bool, error)

type executors []Efunc

func (ex *executors) execute(c *CommandBuffer, s string) error {
	a := cmd.Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil // no tokens
	}
	for _, e := range *ex {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}

	name := args[0].String()
	slog.Debug("unknown command", "name", name)
	conlog.Printf("Unknown command \"%s\"\n", name)
	return nil
}

// Commands runs registered console commands.
func Commands(_ *CommandBuffer, a cmd.Arguments) (bool, error) {
	return cmd.Execute(a)
}

// Cvars prints a cvar given by name alone and sets it when a value follows.
func Cvars(_ *CommandBuffer, a cmd.Arguments) (bool, error) {
	args := a.Args()
	cv, ok := cvar.Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}
