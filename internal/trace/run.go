package trace

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joshuapare/slotkit/slotmap"
)

// Outcome names used in results and expectations.
const (
	OutcomeOK         = "ok"
	OutcomeStale      = "stale"
	OutcomeDoubleFree = "double-free"
	OutcomeCapacity   = "capacity"
)

// Step is the result of executing one instruction.
type Step struct {
	Instr   Instr  `json:"instr"`
	Outcome string `json:"outcome"`          // ok, stale, double-free, capacity, true/false, or a count
	Detail  string `json:"detail,omitempty"` // issued handle for create, value for get
	Pass    bool   `json:"pass"`
}

// Report is the result of running a whole script.
type Report struct {
	Steps []Step        `json:"steps"`
	Stats slotmap.Stats `json:"stats"`
}

// Failures returns the steps whose expectation did not hold.
func (r *Report) Failures() []Step {
	var out []Step
	for _, s := range r.Steps {
		if !s.Pass {
			out = append(out, s)
		}
	}
	return out
}

// Runner executes instructions against an Allocator[string]. Labels persist
// until the next "new".
type Runner struct {
	log    *slog.Logger
	a      *slotmap.Allocator[string]
	labels map[string]slotmap.Handle
}

// NewRunner creates a runner with an unbounded allocator. log may be nil.
func NewRunner(log *slog.Logger) *Runner {
	r := &Runner{log: log}
	r.reset(-1)
	return r
}

// Run executes prog and reports every step. Failed expectations do not stop
// the run.
func (r *Runner) Run(prog []Instr) *Report {
	rep := &Report{Steps: make([]Step, 0, len(prog))}
	for _, in := range prog {
		rep.Steps = append(rep.Steps, r.Exec(in))
	}
	rep.Stats = r.a.Stats()
	return rep
}

// Exec executes a single instruction.
func (r *Runner) Exec(in Instr) Step {
	st := Step{Instr: in}

	switch in.Op {
	case OpNew:
		r.reset(in.Max)
		st.Outcome = OutcomeOK
	case OpCreate:
		h, err := r.a.Insert(in.Label)
		st.Outcome = classify(err)
		if err == nil {
			r.labels[in.Label] = h
			st.Detail = h.String()
		}
	case OpRemove:
		st.Outcome = classify(r.a.Remove(r.labels[in.Label]))
	case OpGet:
		v, err := r.a.Get(r.labels[in.Label])
		st.Outcome = classify(err)
		if err == nil {
			st.Detail = v
		}
	case OpContains:
		st.Outcome = strconv.FormatBool(r.a.Contains(r.labels[in.Label]))
	case OpLen:
		st.Outcome = strconv.Itoa(r.a.Len())
	case OpClear:
		r.a.Clear()
		st.Outcome = OutcomeOK
	}

	st.Pass = matches(in, st)
	return st
}

// reset replaces the allocator. A negative maxCapacity means unbounded.
func (r *Runner) reset(maxCapacity int) {
	r.a = slotmap.New(&slotmap.Options[string]{
		MaxCapacity: maxCapacity,
		Bounded:     maxCapacity >= 0,
		Logger:      r.log,
	})
	r.labels = make(map[string]slotmap.Handle)
}

func classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, slotmap.ErrDoubleFree):
		return OutcomeDoubleFree
	case errors.Is(err, slotmap.ErrStaleHandle):
		return OutcomeStale
	case errors.Is(err, slotmap.ErrCapacityExceeded):
		return OutcomeCapacity
	default:
		return err.Error()
	}
}

func matches(in Instr, st Step) bool {
	want := in.Expect
	if want == "" {
		switch in.Op {
		case OpCreate, OpRemove, OpGet:
			want = OutcomeOK
		default:
			return true
		}
	}

	switch {
	case want == st.Outcome:
		return true
	case want == OutcomeStale && st.Outcome == OutcomeDoubleFree:
		return true
	case strings.HasPrefix(want, "h(") && st.Outcome == OutcomeOK:
		return want == st.Detail
	case in.Op == OpGet && st.Outcome == OutcomeOK && !isOutcome(want):
		return want == st.Detail
	}
	return false
}

// isOutcome reports whether s names an error outcome. Such expectations are
// never compared against a stored value.
func isOutcome(s string) bool {
	switch s {
	case OutcomeStale, OutcomeDoubleFree, OutcomeCapacity:
		return true
	}
	return false
}
