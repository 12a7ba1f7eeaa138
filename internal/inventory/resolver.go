package inventory

import (
	"context"
)

// ResolveOne locates a single entity by trying filters in order against the
// bridge channel, then against the direct REST channel when it is
// configured.
//
// The attempt sequence is deliberately flat so the short-circuit rule stays
// auditable:
//
//  1. Each filter, with limit 1, against the bridge. A bridge call failure
//     is treated as a channel-wide verdict: a missing or broken tool will
//     not heal between filters, so remaining filters skip straight to REST.
//     Zero results from a healthy bridge advances to the next filter.
//  2. The same filter list against REST GET, only when configured. REST
//     call failures advance to the next filter (paths differ per install,
//     so a single failure is not conclusive for this channel).
//
// When no channel yields a match, the returned *NotFoundError names the
// attempted tool and path and wraps the first channel failure, preserving
// the original (usually most informative) error.
func (s *Service) ResolveOne(ctx context.Context, tool, restPath string, filters []Filter) (EntityHandle, error) {
	var firstErr error

	for _, filter := range filters {
		result, err := s.bridge.Invoke(ctx, tool, withLimit(filter, 1))
		if err != nil {
			firstErr = err
			s.logger.Debug("bridge resolution failed, trying direct channel",
				"tool", tool,
				"error", err,
			)
			break
		}
		if rows := resultRows(result); len(rows) > 0 {
			return handleFrom(rows[0]), nil
		}
	}

	if s.direct.Configured() {
		for _, filter := range filters {
			result, err := s.direct.Get(ctx, restPath, withLimit(filter, 1))
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if rows := resultRows(result); len(rows) > 0 {
				return handleFrom(rows[0]), nil
			}
		}
	}

	return EntityHandle{}, &NotFoundError{Tool: tool, Path: restPath, err: firstErr}
}

// withLimit copies the filter and sets the result limit.
func withLimit(filter Filter, limit int) map[string]any {
	args := make(map[string]any, len(filter)+1)
	for k, v := range filter {
		args[k] = v
	}
	args["limit"] = limit
	return args
}
