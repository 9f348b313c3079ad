package git

import (
	"context"
	"fmt"
)

// HardReset resets the current branch, the index and the work tree to ref
func (s *Store) HardReset(ctx context.Context, ref string) error {
	if _, err := s.run(ctx, "reset", "--hard", ref); err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", ref, err)
	}
	return nil
}
