package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTemplateCache invalidates caches touched by a template write.
// Template counts feed the dashboard, so the overview cache goes with them.
func InvalidateTemplateCache(ctx context.Context, cm *CacheManager, templateID int64) {
	SafeDelete(ctx, cm.Template, fmt.Sprintf("id:%d", templateID))
	SafeInvalidatePattern(ctx, cm.Template, "list:*")
	SafeInvalidatePattern(ctx, cm.Dashboard, "*")
}

// InvalidateJobCache invalidates caches touched by a job write.
func InvalidateJobCache(ctx context.Context, cm *CacheManager, jobID int64) {
	SafeDelete(ctx, cm.Job, fmt.Sprintf("id:%d", jobID))
	SafeInvalidatePattern(ctx, cm.Job, "list:*")
	SafeInvalidatePattern(ctx, cm.Dashboard, "*")
}
