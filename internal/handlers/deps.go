package handlers

import (
	"time"

	"github.com/routehaven/orsproxy/internal/coordinator"
	"github.com/routehaven/orsproxy/pkg/cache"
	"github.com/routehaven/orsproxy/pkg/logger"
	"github.com/routehaven/orsproxy/pkg/upstream"
)

// Deps bundles the components every non-health endpoint wires together:
// cache store, single-flight coordinator, upstream client, and logger.
type Deps struct {
	Store       *cache.Store
	Coordinator *coordinator.Coordinator
	Upstream    *upstream.Client
	Log         *logger.Logger
	CacheTTL    time.Duration
}
