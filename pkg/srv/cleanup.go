package srv

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandevgo/edagent/pkg/log"
)

// cleanupService releases a resource on shutdown. Start is a no-op.
type cleanupService struct {
	name string
	fn   func() error
	once sync.Once
}

func (c *cleanupService) Start(context.Context) error { return nil }
func (c *cleanupService) String() string              { return "cleanup:" + c.name }

// Shutdown runs the cleanup at most once, so repeated shutdown paths are safe.
func (c *cleanupService) Shutdown(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		if c.fn == nil {
			return
		}
		log.FromCtx(ctx).Debug().Str("resource", c.name).Msg("releasing")
		if err = c.fn(); err != nil {
			err = fmt.Errorf("close %s: %w", c.name, err)
		}
	})
	return err
}

func NewCleanup(name string, fn func() error) Service {
	return &cleanupService{name: name, fn: fn}
}
