package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	NoopPipelineHooks
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source, chartType string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("load failed", "source", source, "err", err)
		return
	}
	h.Logger.Debug("loaded chart", "source", source, "type", chartType, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderComplete(_ context.Context, chartType string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "type", chartType, "err", err)
		return
	}
	h.Logger.Debug("rendered", "type", chartType, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnConvertComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("convert failed", "format", format, "err", err)
		return
	}
	h.Logger.Debug("converted", "format", format, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.Logger.Debug("request", "method", method, "path", path, "id", requestID)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
