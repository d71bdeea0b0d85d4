package search

import (
	"log/slog"

	"github.com/poiesic/tagraph/core"
)

// ResolveMonitor provides hooks to observe query resolution.
// Implement this interface to trace intermediate steps of a query.
type ResolveMonitor interface {
	Start(query string, lemmas []string, universe int)
	TagApplied(tag *core.CanonicalTag, candidates int)
	EarlyStop(tag *core.CanonicalTag, candidates int, previous int)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string, _ int)            {}
func (n *noopMonitor) TagApplied(_ *core.CanonicalTag, _ int)       {}
func (n *noopMonitor) EarlyStop(_ *core.CanonicalTag, _ int, _ int) {}
func (n *noopMonitor) Finish(_ *Result)                             {}

// LogMonitor writes a per-step trace of resolution to a logger.
type LogMonitor struct {
	logger *slog.Logger
}

var _ ResolveMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a monitor logging at info level.
// A nil logger falls back to slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger}
}

func (m *LogMonitor) Start(query string, lemmas []string, universe int) {
	m.logger.Info("resolving query", "query", query, "lemmas", lemmas, "universe", universe)
}

func (m *LogMonitor) TagApplied(tag *core.CanonicalTag, candidates int) {
	m.logger.Info("tag narrowed candidates",
		"tag", tag.Key.String(),
		"tagID", tag.ID(),
		"category", tag.Category,
		"variants", tag.VariantNames(),
		"candidates", candidates)
}

func (m *LogMonitor) EarlyStop(tag *core.CanonicalTag, candidates int, previous int) {
	m.logger.Info("early stop",
		"tag", tag.Key.String(),
		"tagID", tag.ID(),
		"candidates", candidates,
		"previous", previous)
}

func (m *LogMonitor) Finish(result *Result) {
	m.logger.Info("query resolved",
		"applied", len(result.Applied),
		"narrowed", len(result.Narrowed),
		"previous", len(result.Previous),
		"earlyStop", result.EarlyStopped())
}
