package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/zoobzio/responsive"
)

func BenchmarkNormalize_Default(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		responsive.Normalize[int](ctx, nil, nil, nil)
	}
}

func BenchmarkNormalize_Custom(b *testing.B) {
	ctx := context.Background()
	spec := make(responsive.Spec, 0, 32)
	values := make(map[string]int, 32)
	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("bp%d", i)
		spec = append(spec, responsive.Entry{Name: name, Value: responsive.Pair(i*100, i*100+99)})
		values[name] = i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		responsive.Normalize(ctx, values, spec, nil)
	}
}

func BenchmarkResolve_Default(b *testing.B) {
	set := responsive.Normalize[int](context.Background(), nil, nil, nil)
	viewport := responsive.NewViewport(900)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		responsive.Resolve(set, viewport)
	}
}

func BenchmarkResolver_ViewportChange(b *testing.B) {
	ctx := context.Background()
	viewport := responsive.NewViewport(300)
	r := responsive.New(viewport, viewport, map[string]int{"xs": 1, "lg": 2}).
		Reporter(responsive.ReporterFunc(func(context.Context, responsive.Diagnostic) {}))
	if err := r.Start(ctx, nil); err != nil {
		b.Fatalf("Start() error = %v", err)
	}
	defer r.Close(ctx)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			viewport.SetWidth(1100)
		} else {
			viewport.SetWidth(300)
		}
	}
}

func BenchmarkResolver_ProcessDocument(b *testing.B) {
	ch := make(chan []byte, b.N+1)
	ch <- []byte("small: [false, 600]\nlarge: [601, false]\n")
	for i := 1; i <= b.N; i++ {
		ch <- []byte(fmt.Sprintf("small: [false, %d]\nlarge: [%d, false]\n", 500+i%200, 501+i%200))
	}

	viewport := responsive.NewViewport(550)
	r := responsive.New(viewport, viewport, map[string]int{"small": 1, "large": 2}).SyncMode()

	ctx := context.Background()
	if err := r.Watch(ctx, responsive.NewSyncChannelWatcher(ch)); err != nil {
		b.Fatalf("Watch() error = %v", err)
	}
	defer r.Close(ctx)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Process(ctx)
	}
}

func BenchmarkChannelWatcher_Forwarding(b *testing.B) {
	source := make(chan []byte, b.N)
	for i := 0; i < b.N; i++ {
		source <- []byte(fmt.Sprintf("sm: [false, %d]", i))
	}

	watcher := responsive.NewChannelWatcher(source)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := watcher.Watch(ctx)
	if err != nil {
		b.Fatalf("Watch() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		<-out
	}
}
