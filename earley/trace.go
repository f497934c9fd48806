package earley

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/earleychart/chart"
)

// traceBanner prints a section header when the driver starts working
// on a new position, at trace level 2 and above, rendered with pterm
// rather than plain fmt.Printf for a styled CLI. width pads the
// position label to a fixed column, the way a chart-width banner lines
// up leaves of varying lexeme length; 0 falls back to pterm's own
// default box width.
func traceBanner(pos uint64, level int, width int) {
	if level < 2 {
		return
	}
	panel := pterm.DefaultSection
	label := fmt.Sprintf("position %d", pos)
	if width > 0 && len(label) < width {
		label += strings.Repeat(" ", width-len(label))
	}
	panel.Printfln(label)
}

// traceEdges logs every edge a rule newly discovered, at trace level 1
// and above.
func traceEdges(ruleName string, edges []*chart.Edge, level int) {
	if level < 1 {
		return
	}
	for _, e := range edges {
		pterm.Debug.Printfln("%-10s %s", ruleName, e)
	}
}
