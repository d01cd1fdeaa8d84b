package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comalice/immutablectx"
	"github.com/comalice/immutablectx/internal/production"
)

type toDo struct {
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

type appState struct {
	PendingToDo string `json:"pendingToDo" yaml:"pendingToDo"`
	Items       []toDo `json:"items" yaml:"items"`
}

var errEmptyPending = errors.New("nothing pending: use 'pending <text>' first")

const helpText = `commands:
  pending <text>   set the pending item text
  add [text]       add the pending item (or text)
  toggle <n>       toggle item n
  remove <n>       remove item n
  undo | redo      step through history
  show             print the list
  history          print the history cursor
  dot              print the history as Graphviz DOT
  yaml             print the current state as YAML
  quit             exit`

// app maps REPL commands onto container writes. It never touches a
// snapshot directly; every change goes through Apply, Undo or Redo.
type app struct {
	p   *immutablectx.Provider[appState]
	vis *production.DefaultVisualizer[appState]
}

func newApp(p *immutablectx.Provider[appState]) *app {
	return &app{
		p: p,
		vis: &production.DefaultVisualizer[appState]{Label: func(s appState) string {
			return fmt.Sprintf("%d items, %d done", len(s.Items), countDone(s))
		}},
	}
}

// exec runs one command line. io.EOF means the user asked to quit.
func (a *app) exec(line string) (string, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return "", nil
	case "help", "?":
		return helpText, nil
	case "pending":
		return "", a.p.Apply(func(s *appState) { s.PendingToDo = arg })
	case "add":
		return "", a.p.TryApply(func(s *appState) error {
			if arg != "" {
				s.PendingToDo = arg
			}
			if len(s.PendingToDo) == 0 {
				return errEmptyPending
			}
			s.Items = append(s.Items, toDo{Text: s.PendingToDo})
			s.PendingToDo = ""
			return nil
		})
	case "toggle", "remove":
		i, err := a.itemIndex(arg)
		if err != nil {
			return "", err
		}
		if cmd == "toggle" {
			return "", a.p.Apply(func(s *appState) { s.Items[i].Done = !s.Items[i].Done })
		}
		return "", a.p.Apply(func(s *appState) { s.Items = append(s.Items[:i], s.Items[i+1:]...) })
	case "undo":
		if !a.p.Undo() {
			return "nothing to undo", nil
		}
		return "", nil
	case "redo":
		if !a.p.Redo() {
			return "nothing to redo", nil
		}
		return "", nil
	case "show", "ls":
		return render(a.p.State()), nil
	case "history":
		h := a.p.History()
		return fmt.Sprintf("history %d/%d", h.Index()+1, h.Size()), nil
	case "dot":
		return a.vis.ExportDOT(a.p.History()), nil
	case "yaml":
		out, err := a.vis.ExportYAML(a.p.State())
		return string(out), err
	case "quit", "exit":
		return "", io.EOF
	default:
		return "", fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// itemIndex parses a 1-based item number against the current snapshot.
func (a *app) itemIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("item number: %w", err)
	}
	if n < 1 || n > len(a.p.State().Items) {
		return 0, fmt.Errorf("no item %d", n)
	}
	return n - 1, nil
}

func countDone(s appState) int {
	done := 0
	for _, it := range s.Items {
		if it.Done {
			done++
		}
	}
	return done
}

func render(s appState) string {
	var b strings.Builder
	for i, it := range s.Items {
		mark := " "
		if it.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "%2d [%s] %s\n", i+1, mark, it.Text)
	}
	if len(s.Items) == 0 {
		b.WriteString("   no items\n")
	}
	fmt.Fprintf(&b, "   pending: %q  (%d/%d done)", s.PendingToDo, countDone(s), len(s.Items))
	return b.String()
}
