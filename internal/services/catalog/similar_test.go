package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSimilarAggregatesPartialFailures(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 2, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, "/diamonds/")
		if ref == "D-bad" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Diamond not found"}`))
			return
		}
		fmt.Fprintf(w, `{"success":true,"data":{"stockRef":%q,"status":"AVAILABLE"}}`, ref)
	}))

	res, err := svc.Similar(context.Background(), nil, []string{"D-1", "D-bad", "D-2"})
	if err != nil {
		t.Fatalf("expected no join error, got %v", err)
	}
	if len(res.Diamonds) != 2 {
		t.Fatalf("expected 2 diamonds, got %+v", res.Diamonds)
	}
	// Input order survives the concurrent join.
	if res.Diamonds[0].StockRef != "D-1" || res.Diamonds[1].StockRef != "D-2" {
		t.Fatalf("expected input order, got %+v", res.Diamonds)
	}
	failure, ok := res.Failed["D-bad"]
	if !ok {
		t.Fatal("expected failed reference reported")
	}
	if failure.Error() != "Diamond not found" {
		t.Fatalf("expected server message kept, got %v", failure)
	}
}

func TestSimilarRespectsConcurrencyCap(t *testing.T) {
	t.Parallel()

	const limit = 3
	var inFlight, peak int64
	var mu sync.Mutex
	release := make(chan struct{})

	svc := newTestService(t, limit, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		<-release
		atomic.AddInt64(&inFlight, -1)
		w.Write([]byte(`{"success":true,"data":{"stockRef":"D","status":"AVAILABLE"}}`))
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		refs := make([]string, 10)
		for i := range refs {
			refs[i] = fmt.Sprintf("D-%d", i)
		}
		_, _ = svc.Similar(context.Background(), nil, refs)
	}()

	// Let the pool saturate, then drain it.
	for i := 0; i < 10; i++ {
		release <- struct{}{}
	}
	<-done

	mu.Lock()
	defer mu.Unlock()
	if peak > limit {
		t.Fatalf("concurrency peaked at %d, limit is %d", peak, limit)
	}
	if peak == 0 {
		t.Fatal("expected at least one lookup")
	}
}

func TestSimilarEmptyInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 2, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no lookups expected for empty input")
	}))

	res, err := svc.Similar(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Diamonds) != 0 || len(res.Failed) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}
