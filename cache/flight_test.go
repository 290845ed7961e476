package cache

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// waitForInflight blocks until n callers have registered for key, so a test
// can release a held flight knowing every caller has joined it.
func waitForInflight(g *flightGroup, key string, n int) {
	for {
		g.mu.Lock()
		registered := g.inflight[key]
		g.mu.Unlock()
		if registered >= n {
			return
		}
		runtime.Gosched()
	}
}

func TestFlightGroup_Coalesces(t *testing.T) {
	g := newFlightGroup()

	var calls int32
	var startedOnce sync.Once
	release := make(chan struct{})
	started := make(chan struct{})

	const callers = 10
	var wg sync.WaitGroup
	results := make([]any, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err, _ := g.Do("k", func() (any, error) {
				atomic.AddInt32(&calls, 1)
				startedOnce.Do(func() { close(started) })
				<-release
				return "shared", nil
			})
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
			results[i] = value
		}(i)
	}

	<-started
	waitForInflight(g, "k", callers)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fn called %d times, want 1", n)
	}
	for i, value := range results {
		if value != "shared" {
			t.Errorf("caller %d got %v, want shared", i, value)
		}
	}
}

func TestFlightGroup_SharesError(t *testing.T) {
	g := newFlightGroup()

	boom := errors.New("boom")
	var startedOnce sync.Once
	release := make(chan struct{})
	started := make(chan struct{})

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err, _ := g.Do("k", func() (any, error) {
				startedOnce.Do(func() { close(started) })
				<-release
				return nil, boom
			})
			errs[i] = err
		}(i)
	}

	<-started
	waitForInflight(g, "k", callers)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, boom) {
			t.Errorf("caller %d error = %v, want boom", i, err)
		}
	}
}

func TestFlightGroup_RegistrationRemovedAfterSettle(t *testing.T) {
	g := newFlightGroup()

	var calls int32
	fn := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}

	g.Do("k", fn)
	g.Do("k", fn) // sequential call starts a fresh execution

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fn called %d times for sequential calls, want 2", n)
	}

	if len(g.inflight) != 0 {
		t.Errorf("inflight registrations = %d after settle, want 0", len(g.inflight))
	}
}

func TestFlightGroup_ForgetAll(t *testing.T) {
	g := newFlightGroup()

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var first any
	go func() {
		defer wg.Done()
		first, _, _ = g.Do("k", func() (any, error) {
			close(started)
			<-release
			return "original", nil
		})
	}()

	<-started
	g.ForgetAll()

	// A caller after ForgetAll starts its own fetch instead of joining.
	var calls int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Do("k", func() (any, error) {
			atomic.AddInt32(&calls, 1)
			return "fresh", nil
		})
	}()
	<-done

	close(release)
	wg.Wait()

	if first != "original" {
		t.Errorf("waiting caller got %v, want original", first)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("post-forget fn called %d times, want 1", n)
	}
}
