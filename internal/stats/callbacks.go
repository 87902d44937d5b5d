package stats

import (
	"fmt"
	"io"
	"os"

	"flint/internal/pipeline"
)

// Callbacks wires the Collector into a pipeline run: it registers a parse
// callback that gathers statistics and prints the report, then stops the
// pipeline so no later phase ever runs. Everything else delegates to the
// embedded defaults, so build-tool queries keep their stock behavior.
type Callbacks struct {
	pipeline.Defaults

	// Out receives the rendered report; defaults to stdout.
	Out io.Writer
}

// BuildController stops at parse with the statistics callback attached.
func (c *Callbacks) BuildController(sess *pipeline.Session) *pipeline.ControllerSet {
	cs := c.Defaults.BuildController(sess)
	cs.Set(pipeline.PhaseParse, pipeline.PhaseController{
		Stop:     pipeline.Stop,
		Callback: c.afterParse(sess),
	})
	return cs
}

func (c *Callbacks) afterParse(sess *pipeline.Session) pipeline.PhaseCallback {
	return func(st pipeline.State) error {
		parsed, ok := st.(*pipeline.Parsed)
		if !ok {
			return fmt.Errorf("stats: unexpected state %T after parse", st)
		}

		collector := NewCollector()
		collector.Collect(parsed.Tree)

		out := c.Out
		if out == nil {
			out = os.Stdout
		}
		collector.Report(sess.Opts.CrateName).Render(out)
		return nil
	}
}
