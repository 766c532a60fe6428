package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultForcedTimeout = 2 * time.Second

// Func releases one resource.
type Func func(ctx context.Context) error

// Closer releases registered resources in reverse order of registration.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []Func
	forcedTimeout time.Duration
}

// New returns a Closer. forcedTimeout bounds the parallel close of whatever is left
// once the graceful context expires; zero means two seconds.
func New(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}
	return &Closer{forcedTimeout: forcedTimeout}
}

func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close runs every Func once, last added first. If ctx expires mid-way the remaining
// funcs are run concurrently under the forced timeout. Subsequent calls are no-ops.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := make([]Func, len(c.funcs))
		copy(funcs, c.funcs)
		c.mu.Unlock()

		left, msgs := c.closeInOrder(ctx, funcs)
		if left == 0 {
			if len(msgs) > 0 {
				err = fmt.Errorf("shutdown finished with errors: %s", strings.Join(msgs, "; "))
			}
			return
		}

		msgs = append(msgs, c.closeForced(funcs[:left])...)
		err = fmt.Errorf("shutdown interrupted with %d/%d funcs pending: %s",
			left, len(funcs), strings.Join(msgs, "; "))
	})
	return err
}

// closeInOrder returns how many funcs (from the front of the slice) were not closed.
func (c *Closer) closeInOrder(ctx context.Context, funcs []Func) (int, []string) {
	var msgs []string
	for i := len(funcs) - 1; i >= 0; i-- {
		done := make(chan error, 1)
		f := funcs[i]
		go func() { done <- f(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				msgs = append(msgs, err.Error())
			}
		case <-ctx.Done():
			return i + 1, msgs
		}
	}
	return 0, msgs
}

func (c *Closer) closeForced(funcs []Func) []string {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		msgs []string
	)
	for _, f := range funcs {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				msgs = append(msgs, "forced: "+err.Error())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return msgs
}
