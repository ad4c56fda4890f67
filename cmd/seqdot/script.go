package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/seqtree"
)

// Op is a single edit operation of a script.
type Op struct {
	Line int
	Verb string
	Pos  int
	N    int // count for hide
	Args []string
}

// ParseScript reads edit operations, one per line. Empty lines and lines
// starting with '#' are ignored. Operations are
//
//	insert <pos> <value>...
//	append <value>...
//	delete <pos>
//	set    <pos> <value>
//	hide   <pos> <n>
func ParseScript(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		op, err := parseOp(lineno, fields)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, scanner.Err()
}

func parseOp(lineno int, fields []string) (Op, error) {
	op := Op{Line: lineno, Verb: strings.ToLower(fields[0])}
	args := fields[1:]
	arity := map[string][2]int{ // min, max number of arguments; -1 for unbounded
		"insert": {2, -1},
		"append": {1, -1},
		"delete": {1, 1},
		"set":    {2, 2},
		"hide":   {2, 2},
	}
	a, ok := arity[op.Verb]
	if !ok {
		return op, fmt.Errorf("line %d: unknown operation %q", lineno, fields[0])
	}
	if len(args) < a[0] || (a[1] >= 0 && len(args) > a[1]) {
		return op, fmt.Errorf("line %d: wrong number of arguments for %s", lineno, op.Verb)
	}
	if op.Verb == "append" {
		op.Args = args
		return op, nil
	}
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return op, fmt.Errorf("line %d: position: %w", lineno, err)
	}
	op.Pos = pos
	if op.Verb == "hide" {
		if op.N, err = strconv.Atoi(args[1]); err != nil {
			return op, fmt.Errorf("line %d: count: %w", lineno, err)
		}
		return op, nil
	}
	op.Args = args[1:]
	return op, nil
}

// replayList applies ops to a list. Hiding is not supported by lists.
func replayList(ops []Op, l *seqtree.List[string]) error {
	for _, op := range ops {
		var err error
		switch op.Verb {
		case "insert":
			for i, v := range op.Args {
				if err = l.Insert(op.Pos+i, v); err != nil {
					break
				}
			}
		case "append":
			for _, v := range op.Args {
				l.Append(v)
			}
		case "delete":
			err = l.Delete(op.Pos)
		case "set":
			err = l.Set(op.Pos, op.Args[0])
		default:
			err = fmt.Errorf("%w: %s needs a hide list", seqtree.ErrIllegalArguments, op.Verb)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", op.Line, err)
		}
	}
	return nil
}

// replayHider applies ops to a hide list. Positions are visible positions,
// deleting hides an item.
func replayHider(ops []Op, l seqtree.Hider[string]) error {
	for _, op := range ops {
		var err error
		switch op.Verb {
		case "insert":
			vis := make([]bool, len(op.Args))
			for i := range vis {
				vis[i] = true
			}
			if op.Pos >= 0 && op.Pos < l.Len() {
				target, _ := l.Get(op.Pos)
				err = l.InsertSequenceLeftOf(target, op.Args, vis)
			} else if op.Pos == l.Len() {
				err = l.InsertSequenceAll(l.TotalLen(), op.Args, vis)
			} else {
				err = fmt.Errorf("%w: %d not in [0, %d]", seqtree.ErrIndexOutOfRange, op.Pos, l.Len())
			}
		case "append":
			vis := make([]bool, len(op.Args))
			for i := range vis {
				vis[i] = true
			}
			err = l.InsertSequenceAll(l.TotalLen(), op.Args, vis)
		case "delete":
			err = l.Hide(op.Pos, 1)
		case "hide":
			err = l.Hide(op.Pos, op.N)
		default:
			err = fmt.Errorf("%w: values of a hide list cannot be replaced", seqtree.ErrIllegalArguments)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", op.Line, err)
		}
	}
	return nil
}
