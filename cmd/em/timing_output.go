package main

import (
	"fmt"
	"io"
	"time"

	"emblem/internal/observ"
	"emblem/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(pipeline.StageParse)))
	}
	if timings.Has(pipeline.StageReport) {
		fmt.Fprintf(out, "reported %.1f ms\n", toMillis(timings.Duration(pipeline.StageReport)))
	}
	total := timings.Sum(pipeline.StageParse, pipeline.StageReport)
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
}

// printTimer writes the per-phase summary accumulated across files.
func printTimer(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
