package immutablectx_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/comalice/immutablectx"
	"github.com/comalice/immutablectx/testutil"
)

type toDo struct {
	Text string
	Done bool
}

type toDoAppState struct {
	PendingToDo string
	Items       []toDo
}

func initial() toDoAppState {
	return toDoAppState{Items: []toDo{{Text: "Release new version", Done: false}}}
}

// Updates, written the way a presentation layer would.

func toggle(i int) immutablectx.Mutator[toDoAppState] {
	return func(s *toDoAppState) { s.Items[i].Done = !s.Items[i].Done }
}

func updatePending(text string) immutablectx.Mutator[toDoAppState] {
	return func(s *toDoAppState) { s.PendingToDo = text }
}

func addToDo(s *toDoAppState) {
	if len(s.PendingToDo) > 0 {
		s.Items = append(s.Items, toDo{Text: s.PendingToDo})
		s.PendingToDo = ""
	}
}

func remove(i int) immutablectx.Mutator[toDoAppState] {
	return func(s *toDoAppState) { s.Items = append(s.Items[:i], s.Items[i+1:]...) }
}

func texts(s toDoAppState) []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Text
	}
	return out
}

func TestToDo_EndToEnd(t *testing.T) {
	p := immutablectx.NewProvider(initial(), immutablectx.NewUndoManager[toDoAppState]())
	renders := testutil.NewRecorder[toDoAppState]()
	p.Subscribe(renders.Hook("render"))

	first := p.State()
	steps := []immutablectx.Mutator[toDoAppState]{
		toggle(0),
		updatePending("Write docs"),
		addToDo,
		updatePending("Ship"),
		addToDo,
		remove(0),
	}
	for i, m := range steps {
		if err := p.Apply(m); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if got, want := texts(p.State()), []string{"Write docs", "Ship"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v want %v", got, want)
	}
	if first.Items[0].Done || len(first.Items) != 1 {
		t.Errorf("initial snapshot changed: %+v", first)
	}
	if renders.Count("render") != len(steps) {
		t.Errorf("renders = %d want %d", renders.Count("render"), len(steps))
	}

	// Undo the removal, then the last add.
	p.Undo()
	p.Undo()
	if got, want := texts(p.State()), []string{"Release new version", "Write docs"}; !reflect.DeepEqual(got, want) {
		t.Errorf("after undo items = %v want %v", got, want)
	}
	if p.State().PendingToDo != "Ship" {
		t.Errorf("pending = %q want Ship", p.State().PendingToDo)
	}

	// A new edit drops the redo branch.
	if err := p.Apply(updatePending("")); err != nil {
		t.Fatal(err)
	}
	if p.CanRedo() || p.Redo() {
		t.Error("redo should be unavailable after a new edit")
	}
	if got := p.History().Size(); got != len(steps) {
		t.Errorf("history size = %d want %d", got, len(steps))
	}
}

func TestToDo_ToggleLeavesPreviousSnapshot(t *testing.T) {
	c := immutablectx.New(toDoAppState{Items: []toDo{{Text: "X"}}})
	prev := c.State()

	if err := c.Apply(toggle(0)); err != nil {
		t.Fatal(err)
	}

	want := toDoAppState{Items: []toDo{{Text: "X", Done: true}}}
	if !reflect.DeepEqual(c.State(), want) {
		t.Errorf("state = %+v want %+v", c.State(), want)
	}
	if prev.Items[0].Done {
		t.Error("previous snapshot observed the toggle")
	}
}

func TestProvider_WithoutHistory(t *testing.T) {
	p := immutablectx.NewProvider(initial(), nil)
	if err := p.Apply(toggle(0)); err != nil {
		t.Fatal(err)
	}
	if p.Undo() || p.Redo() || p.CanUndo() || p.CanRedo() {
		t.Error("undo/redo without history should be no-ops")
	}
	if p.History() != nil {
		t.Error("History() should be nil")
	}
	if !p.State().Items[0].Done {
		t.Error("state should keep the applied toggle")
	}
}

func TestProvider_OutOfRangeMutatorIsAtomic(t *testing.T) {
	p := immutablectx.NewProvider(initial(), immutablectx.NewUndoManager[toDoAppState]())
	err := p.Apply(toggle(5))
	if !errors.Is(err, immutablectx.ErrMutatorPanic) {
		t.Fatalf("err = %v want ErrMutatorPanic", err)
	}
	if p.History().Size() != 1 {
		t.Errorf("failed apply was recorded: size %d", p.History().Size())
	}
}

func TestWithHistoryLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := immutablectx.New(initial(), immutablectx.WithHistoryLogger[toDoAppState](logger))
	if err := c.Apply(updatePending("abc")); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "snapshot produced"); n != 2 {
		t.Errorf("logged %d snapshots want 2", n)
	}
	if !strings.Contains(buf.String(), "pendingtodo: abc") {
		t.Errorf("log does not show the new snapshot:\n%s", buf.String())
	}
}

func TestBoundedUndo(t *testing.T) {
	h := immutablectx.NewUndoManager[int](immutablectx.WithLimit(2))
	c := immutablectx.New(0, immutablectx.WithUndo(h))
	for i := 1; i <= 5; i++ {
		if err := c.Apply(func(n *int) { *n = i }); err != nil {
			t.Fatal(err)
		}
	}
	for h.Undo() {
	}
	if c.State() != 4 {
		t.Errorf("oldest reachable state = %d want 4", c.State())
	}
}

func TestDispatcherAndChannelPublisher(t *testing.T) {
	h := immutablectx.NewUndoManager[int]()
	c := immutablectx.New(0, immutablectx.WithUndo(h))
	ch := make(chan int, 8)
	pub := immutablectx.NewChannelPublisher(c, ch)
	d := immutablectx.NewDispatcher(c, 4)

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if err := d.Dispatch(ctx, func(n *int) { *n += i }); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Do(ctx, func() { h.Undo() }); err != nil {
		t.Fatal(err)
	}
	d.Stop()
	if err := d.Dispatch(ctx, func(n *int) { *n = 0 }); !errors.Is(err, immutablectx.ErrDispatcherClosed) {
		t.Errorf("dispatch after stop = %v want ErrDispatcherClosed", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatal(err)
	}

	var got []int
	for n := range ch {
		got = append(got, n)
	}
	if want := []int{1, 3, 6, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("published %v want %v", got, want)
	}
	if pub.Dropped() != 0 {
		t.Errorf("dropped %d snapshots", pub.Dropped())
	}
}
