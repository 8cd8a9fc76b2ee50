package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("v1", "reverse", "Anubis")
	b := Key("v1", "reverse", "Anubis")
	if a != b {
		t.Errorf("same inputs should give same key: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, keyPrefix+"reverse:") {
		t.Errorf("key %q should carry the op prefix", a)
	}
}

func TestKey_DistinguishesInputs(t *testing.T) {
	keys := []string{
		Key("v1", "reverse", "Anubis"),
		Key("v2", "reverse", "Anubis"),
		Key("v1", "partial", "Anubis"),
		Key("v1", "reverse", "Penking"),
		Key("v1", "reverse", "A", "BC"),
		Key("v1", "reverse", "AB", "C"),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
}

func TestFetch_NilCacheComputes(t *testing.T) {
	v, err := Fetch(context.Background(), nil, "k", func() ([]string, error) {
		return []string{"x"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 1 || v[0] != "x" {
		t.Errorf("got %v", v)
	}
}

func TestFetch_WithoutClientPropagatesError(t *testing.T) {
	c := New(nil, time.Minute, nil)
	if c.Enabled() {
		t.Fatal("cache without client should be disabled")
	}
	want := errors.New("boom")
	_, err := Fetch(context.Background(), c, "k", func() (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestFetch_CollapsesConcurrentCalls(t *testing.T) {
	c := New(nil, time.Minute, nil)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _ := Fetch(context.Background(), c, "same", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, v := range results {
		if v != 42 {
			t.Errorf("result %d = %d, want 42", i, v)
		}
	}
	if n := calls.Load(); n < 1 || n > int32(len(results)) {
		t.Errorf("unexpected compute count %d", n)
	}
}
