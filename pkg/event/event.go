// Package event is an in-process publish/subscribe bus for domain events
// such as "order.placed". Listeners run after the emitting transaction has
// committed, so they must not assume they can roll anything back.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers handler for name.
func Listen(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], handler)
}

func listeners(name string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[name]...)
}

// Fire runs every listener for name in registration order. A panicking
// listener is logged and does not stop the others.
func Fire(ctx context.Context, name string, payload interface{}) {
	for _, h := range listeners(name) {
		call(ctx, name, h, payload)
	}
}

func call(ctx context.Context, name string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", name, "panic", fmt.Sprint(r))
		}
	}()
	h(ctx, payload)
}

// Flush removes every listener. Tests use it to reset global state.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
