// Package trace runs line-oriented allocator scripts.
//
// A script is a sequence of operations against an Allocator[string], one per
// line. Blank lines and text after '#' are ignored. Each line may end in an
// expectation introduced by "=>":
//
//	new 2                 # reset with a maximum of 2 live objects (new alone = unbounded)
//	create A              # create an object holding "A", bind its handle to A
//	create B => h(2:0)    # expect a specific handle
//	create X => capacity
//	remove A
//	get B => B            # a get expectation may name the stored value,
//	                      # unless it is stale, double-free or capacity
//	get A => stale        # "stale" also accepts a double free
//	remove A => double-free
//	contains B => true
//	len => 1
//	clear
//
// create, remove and get expect "ok" unless told otherwise. contains and len
// only check when an expectation is given. Unbound labels resolve to the null
// handle.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op is a script operation.
type Op string

const (
	OpNew      Op = "new"
	OpCreate   Op = "create"
	OpRemove   Op = "remove"
	OpGet      Op = "get"
	OpContains Op = "contains"
	OpLen      Op = "len"
	OpClear    Op = "clear"
)

// Instr is one parsed script line.
type Instr struct {
	Line   int
	Op     Op
	Label  string // create/remove/get/contains
	Max    int    // new; -1 = unbounded
	Expect string // empty = default for Op
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Instr, error) {
	var prog []Instr
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		in, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		prog = append(prog, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return prog, nil
}

func parseLine(line int, text string) (Instr, error) {
	in := Instr{Line: line}
	bad := func(msg string) (Instr, error) {
		return Instr{}, &ParseError{Line: line, Text: text, Msg: msg}
	}

	body := text
	if lhs, rhs, ok := strings.Cut(text, "=>"); ok {
		body = strings.TrimSpace(lhs)
		in.Expect = strings.TrimSpace(rhs)
		if in.Expect == "" {
			return bad("empty expectation")
		}
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return bad("missing operation")
	}
	in.Op = Op(strings.ToLower(fields[0]))
	args := fields[1:]

	switch in.Op {
	case OpNew:
		if len(args) > 1 {
			return bad("new takes at most one argument")
		}
		in.Max = -1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return bad("new needs a non-negative capacity")
			}
			in.Max = n
		}
		if in.Expect != "" {
			return bad("new takes no expectation")
		}
	case OpCreate, OpRemove, OpGet, OpContains:
		if len(args) != 1 {
			return bad(string(in.Op) + " needs exactly one label")
		}
		in.Label = args[0]
	case OpLen, OpClear:
		if len(args) != 0 {
			return bad(string(in.Op) + " takes no arguments")
		}
		if in.Op == OpClear && in.Expect != "" {
			return bad("clear takes no expectation")
		}
	default:
		return bad("unknown operation")
	}
	return in, nil
}
