package memory

import (
	"context"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Store is the injected user-memory capability: per-tool preferences and a
// usage log. It replaces the module-level browser-storage singleton so the
// pipeline stays pure and testable against any backend.
type Store interface {
	GetPreferences(ctx context.Context, tool string) (domain.Preferences, error)
	SetPreferences(ctx context.Context, prefs domain.Preferences) error
	AppendUsage(ctx context.Context, record domain.UsageRecord) error
	ListUsage(ctx context.Context, tool string) ([]domain.UsageRecord, error)
}
