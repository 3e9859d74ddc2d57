package output

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/facet/internal/metrics"
)

// Router resolves rendering requests against a registry and executes them,
// converting formatter failures into failed responses instead of errors so a
// batch is never aborted by one bad request.
type Router struct {
	registry  *Registry
	log       logrus.FieldLogger
	collector *metrics.Collector
}

// NewRouter creates a router over the given registry. log may be nil.
func NewRouter(registry *Registry, log logrus.FieldLogger) *Router {
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		log = logger
	}
	return &Router{registry: registry, log: log}
}

// WithMetrics attaches a metrics collector and returns the router.
func (r *Router) WithMetrics(c *metrics.Collector) *Router {
	r.collector = c
	return r
}

// FormatOne executes a single request. It always returns a response: renderer
// failures are captured in Response.Error with Success=false.
func (r *Router) FormatOne(ctx context.Context, req OutputRequest) *OutputResponse {
	start := time.Now()

	resp := r.render(ctx, req)

	status := metrics.StatusOK
	if !resp.Success {
		status = metrics.StatusError
	}
	r.collector.ObserveRender(req.FormatType, status, time.Since(start))

	entry := r.log.WithFields(logrus.Fields{
		"format":     req.FormatType,
		"sub_format": req.SubFormat,
		"findings":   len(req.Findings),
		"duration":   time.Since(start).String(),
	})
	if resp.Success {
		entry.WithField("size_bytes", resp.Output.SizeBytes).Debug("render complete")
	} else {
		entry.WithField("error", resp.Error).Warn("render failed")
	}

	return resp
}

func (r *Router) render(ctx context.Context, req OutputRequest) *OutputResponse {
	meta := map[string]string{"formatter": req.FormatType}
	if req.Context.RunID != "" {
		meta["run_id"] = req.Context.RunID
	}

	if err := ctx.Err(); err != nil {
		return &OutputResponse{
			Success:  false,
			Error:    fmt.Sprintf("render canceled: %v", err),
			Metadata: meta,
		}
	}

	formatter, err := r.registry.New(req.FormatType, req.Config)
	if err != nil {
		return &OutputResponse{Success: false, Error: err.Error(), Metadata: meta}
	}

	out, err := formatter.Format(req.Findings, req.Context, req.SubFormat, req.Options)
	if err != nil {
		return &OutputResponse{Success: false, Error: err.Error(), Metadata: meta}
	}

	// A canceled request must not surface a partial render as success.
	if err := ctx.Err(); err != nil {
		return &OutputResponse{
			Success:  false,
			Error:    fmt.Sprintf("render canceled: %v", err),
			Metadata: meta,
		}
	}

	if sf, ok := out.Metadata["subFormat"]; ok {
		meta["sub_format"] = sf
	}
	return &OutputResponse{Success: true, Output: out, Metadata: meta}
}

// FormatMultiple executes all requests concurrently and returns one response
// per request, in request order regardless of completion order. A failed
// request never delays or cancels its siblings.
func (r *Router) FormatMultiple(ctx context.Context, reqs []OutputRequest) []*OutputResponse {
	responses := make([]*OutputResponse, len(reqs))

	g := new(errgroup.Group)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			responses[i] = r.FormatOne(ctx, req)
			return nil
		})
	}
	// Workers never return errors; failures live in the responses.
	_ = g.Wait()

	return responses
}
