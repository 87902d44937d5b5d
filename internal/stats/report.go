package stats

import (
	"fmt"
	"io"
	"math"
)

// Report is the derived view of a Collector's counters.
type Report struct {
	Crate             string
	PrintlnCount      uint
	MostCommon        uint
	MostCommonPercent uint
	FourPlusPercent   uint
}

// Report computes the derived statistics. Ties on the most common argument
// count break toward the smaller count; an empty crate yields zero
// percentages rather than dividing by zero.
func (c *Collector) Report(crate string) Report {
	rep := Report{Crate: crate, PrintlnCount: c.PrintlnCount}

	var total uint
	for _, occurrences := range c.ArgCounts {
		total += occurrences
	}
	if total == 0 {
		return rep
	}

	best, bestCount := uint(0), uint(0)
	var fourPlus uint
	for argc, occurrences := range c.ArgCounts {
		if occurrences > bestCount || (occurrences == bestCount && argc < best) {
			best, bestCount = argc, occurrences
		}
		if argc >= 4 {
			fourPlus += occurrences
		}
	}

	rep.MostCommon = best
	rep.MostCommonPercent = percent(bestCount, total)
	rep.FourPlusPercent = percent(fourPlus, total)
	return rep
}

func percent(part, total uint) uint {
	return uint(math.Round(100 * float64(part) / float64(total)))
}

// Render writes the report in the tool's output format.
func (r Report) Render(w io.Writer) {
	fmt.Fprintf(w, "In crate: %s,\n\n", r.Crate)
	fmt.Fprintf(w, "Found %d uses of `println!`;\n", r.PrintlnCount)
	fmt.Fprintf(w, "The most common number of arguments is %d (%d%% of all functions);\n",
		r.MostCommon, r.MostCommonPercent)
	fmt.Fprintf(w, "%d%% of functions have four or more arguments.\n", r.FourPlusPercent)
}
