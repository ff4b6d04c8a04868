package bench

import (
	"github.com/dekarrin/rosed"
)

const reportWidth = 100

var tableOpts = rosed.Options{
	TableHeaders:             true,
	NoTrailingLineSeparators: true,
}

// RenderSizeTable renders the mean-grammar-size table as CLI-ready text.
func RenderSizeTable(r Report) string {
	return rosed.Edit("").
		InsertTableOpts(0, r.SizeTable(), reportWidth, tableOpts).
		String()
}

// RenderTimeTableMillis renders the mean-running-time (ms) table as
// CLI-ready text.
func RenderTimeTableMillis(r Report) string {
	return rosed.Edit("").
		InsertTableOpts(0, r.TimeTableMillis(), reportWidth, tableOpts).
		String()
}
