package shutdown

import (
	"container/heap"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/flanksource/commons/logger"
)

const (
	PriorityIngress  = 0
	PriorityDefault  = 100
	PriorityWorkers  = 200
	PriorityDatabase = 300
	PriorityCritical = 400
)

// DefaultTimeout bounds the whole shutdown sequence
const DefaultTimeout = 10 * time.Second

type Hook struct {
	label    string
	priority int
	seq      int
	fn       func(ctx context.Context) error
}

type HookHeap []*Hook

func (h HookHeap) Len() int { return len(h) }

// Less keeps registration order for hooks of equal priority
func (h HookHeap) Less(i, j int) bool {
	if h[i].priority == h[j].priority {
		return h[i].seq < h[j].seq
	}
	return h[i].priority < h[j].priority
}

func (h HookHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *HookHeap) Push(x any) {
	*h = append(*h, x.(*Hook))
}

func (h *HookHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[0 : n-1]
	return item
}

// Hooks is an ordered set of shutdown hooks, lowest priority runs first
type Hooks struct {
	mu    sync.Mutex
	hooks HookHeap
	seq   int
}

func New() *Hooks {
	return &Hooks{}
}

// Add registers a hook with default priority
func (h *Hooks) Add(label string, fn func(ctx context.Context) error) {
	h.AddWithPriority(label, PriorityDefault, fn)
}

func (h *Hooks) AddWithPriority(label string, priority int, fn func(ctx context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	heap.Push(&h.hooks, &Hook{label: label, priority: priority, seq: h.seq, fn: fn})
	h.seq++
}

// Len returns the number of pending hooks
func (h *Hooks) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks.Len()
}

// Run executes and removes all hooks in priority order. Every hook runs even
// when an earlier one fails or panics; the number of failed hooks is returned
// as an error.
func (h *Hooks) Run(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.hooks) == 0 {
		return nil
	}

	// drain in priority order
	var ordered []*Hook
	for h.hooks.Len() > 0 {
		ordered = append(ordered, heap.Pop(&h.hooks).(*Hook))
	}

	logger.Infof("Executing %d shutdown hooks", len(ordered))

	failed := 0
	for _, hook := range ordered {
		logger.Debugf("Executing shutdown hook: %s (priority=%d)", hook.label, hook.priority)
		if err := runHook(ctx, hook); err != nil {
			logger.Errorf("Shutdown hook %s failed: %v", hook.label, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d shutdown hooks failed", failed, len(ordered))
	}
	logger.Infof("All shutdown hooks executed")
	return nil
}

func runHook(ctx context.Context, hook *Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return hook.fn(ctx)
}

var global = New()

// AddHook registers a process wide shutdown hook with default priority
func AddHook(label string, fn func(ctx context.Context) error) {
	global.Add(label, fn)
}

// AddHookWithPriority registers a process wide shutdown hook with specific priority
func AddHookWithPriority(label string, priority int, fn func(ctx context.Context) error) {
	global.AddWithPriority(label, priority, fn)
}

// Shutdown executes all process wide hooks, bounded by timeout
func Shutdown(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return global.Run(ctx)
}

var once sync.Once

// WaitForSignal blocks until an interrupt or ctx is done, then runs the
// process wide hooks. A second interrupt exits immediately.
func WaitForSignal(ctx context.Context, timeout time.Duration) error {
	var err error
	once.Do(func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			fmt.Fprintf(os.Stderr, "\nReceived %s - initiating graceful shutdown...\n", sig)
			fmt.Fprintf(os.Stderr, "   Press Ctrl+C again to force immediate exit\n\n")
			go func() {
				<-sigChan
				fmt.Fprintf(os.Stderr, "\nForce exit\n")
				os.Exit(1)
			}()
		case <-ctx.Done():
		}

		err = Shutdown(timeout)
	})
	return err
}
