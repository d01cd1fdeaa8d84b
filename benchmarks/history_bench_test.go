package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/comalice/immutablectx"
	"github.com/comalice/immutablectx/internal/extensibility"
)

// BenchmarkApplyWithHistory measures Apply while every snapshot is recorded.
func BenchmarkApplyWithHistory(b *testing.B) {
	for _, limit := range []int{0, 64} {
		b.Run(fmt.Sprintf("limit=%d", limit), func(b *testing.B) {
			var opts []immutablectx.HistoryOption
			if limit > 0 {
				opts = append(opts, immutablectx.WithLimit(limit))
			}
			um := immutablectx.NewUndoManager[FlatState](opts...)
			c := immutablectx.New(GenFlatState(100), immutablectx.WithUndo(um))

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = c.Apply(func(d *FlatState) { d.Counters["c2"]++ })
			}
		})
	}
}

// BenchmarkUndoRedo measures cursor moves over a filled history.
func BenchmarkUndoRedo(b *testing.B) {
	um := immutablectx.NewUndoManager[FlatState]()
	c := immutablectx.New(GenFlatState(100), immutablectx.WithUndo(um))
	for range 32 {
		_ = c.Apply(func(d *FlatState) { d.Counters["c3"]++ })
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		um.Undo()
		um.Redo()
	}
}

// BenchmarkDispatcherThroughput measures writes funnelled through a Dispatcher.
func BenchmarkDispatcherThroughput(b *testing.B) {
	c := immutablectx.New(GenFlatState(10))
	d := extensibility.NewDispatcher[FlatState](c, 1024)
	defer d.Stop()

	ctx := context.Background()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := d.Dispatch(ctx, func(s *FlatState) { s.Counters["c4"]++ }); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
