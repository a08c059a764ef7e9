// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"log/slog"
	"testing"
)

func TestDPrintfNeedsDeveloper(t *testing.T) {
	var got []string
	SetDPrintf(func(f string, v ...interface{}) {
		got = append(got, fmt.Sprintf(f, v...))
	})
	defer SetDPrintf(slogPrintf(slog.LevelDebug))

	SetDeveloper(false)
	DPrintf("hidden %d\n", 1)
	SetDeveloper(true)
	DPrintf("shown %d\n", 2)
	SetDeveloper(false)

	if len(got) != 1 || got[0] != "shown 2\n" {
		t.Errorf("DPrintf output = %q, want [\"shown 2\\n\"]", got)
	}
}
