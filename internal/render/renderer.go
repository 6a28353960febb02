package render

import (
	"context"
	"errors"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// ErrRender wraps every renderer failure: subprocess errors, timeouts, and
// malformed renderer output. A render failure is fatal to the single
// request — nothing is cached — but never to the owning chart node's
// tabular data.
var ErrRender = errors.New("render: renderer failed")

// Renderer is the port to the external rasterizer. Implementations block
// until the render completes, the context is done, or their own deadline
// elapses.
type Renderer interface {
	Render(ctx context.Context, req Request) (string, error)
}

// RendererFunc adapts a function to the Renderer interface; tests use it
// to fake the rasterizer without spawning processes.
type RendererFunc func(ctx context.Context, req Request) (string, error)

func (f RendererFunc) Render(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Service is the cache-fronted entry point chart nodes call.
type Service struct {
	cache    *Cache
	renderer Renderer
}

// NewService wires a renderer behind a fresh cache.
func NewService(r Renderer) *Service {
	return &Service{cache: NewCache(), renderer: r}
}

// Render returns the image for req, from cache when possible. Overlapping
// identical requests are not coalesced: each miss invokes the renderer
// independently.
func (s *Service) Render(ctx context.Context, req Request) (string, error) {
	logger := ctxlog.FromContext(ctx)
	req = req.Normalize()
	key := req.Key()

	if image, ok := s.cache.Get(key); ok {
		logger.Debug("Render cache hit.", "key", key)
		return image, nil
	}

	logger.Debug("Render cache miss, invoking renderer.",
		"key", key, "chartType", req.ChartType, "format", req.Format)
	image, err := s.renderer.Render(ctx, req)
	if err != nil {
		return "", err
	}

	s.cache.Put(key, image)
	return image, nil
}
