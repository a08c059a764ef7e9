// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"goedge/conlog"
	"goedge/cvar"
)

var (
	BlockmapCellSize *cvar.Cvar
	Developer        *cvar.Cvar
	MaxGaps          *cvar.Cvar
	MaxIntercepts    *cvar.Cvar
	TouchNodes       *cvar.Cvar
)

func init() {
	BlockmapCellSize = cvar.MustRegister("bm_cellsize", "128", cvar.ARCHIVE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
	// sanity bounds, exceeding them only logs
	MaxGaps = cvar.MustRegister("sv_maxgaps", "100", cvar.NONE)
	MaxIntercepts = cvar.MustRegister("sv_maxintercepts", "256", cvar.NONE)
	TouchNodes = cvar.MustRegister("sv_touchnodes", "1", cvar.NONE)
}
