package observ

import (
	"strings"
	"testing"
)

func TestTimerRecordsPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "1 file")
	tm.Measure("lex", func() string { return "5 tokens" })

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %v", report.Phases)
	}
	if report.Phases[0].Name != "load" || report.Phases[0].Note != "1 file" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "lex" || report.Phases[1].Note != "5 tokens" {
		t.Fatalf("unexpected second phase %+v", report.Phases[1])
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %f smaller than a phase", report.TotalMS)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 5 tokens", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary %q misses %q", summary, want)
		}
	}
}

func TestTimerIgnoresBadIndexAndNil(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "nope")
	tm.End(-1, "nope")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("unexpected phases %v", got.Phases)
	}

	var nilTimer *Timer
	nilTimer.Measure("x", func() string { return "" })
	if got := nilTimer.Report(); got.TotalMS != 0 || got.Phases != nil {
		t.Fatalf("nil timer report = %+v", got)
	}
}
