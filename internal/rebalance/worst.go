package rebalance

import "wsb_trader/internal/models"

// WorstPerformer returns the position with the lowest unrealized return
// percentage. Ties break to the first-encountered position, so the result is
// deterministic for a given input order. The second return is false when the
// input is empty; callers must check it before liquidating.
func WorstPerformer(positions []models.Position) (models.Position, bool) {
	if len(positions) == 0 {
		return models.Position{}, false
	}

	worst := positions[0]
	for _, p := range positions[1:] {
		if p.UnrealizedPLPC.LessThan(worst.UnrealizedPLPC) {
			worst = p
		}
	}
	return worst, true
}
