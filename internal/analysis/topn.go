package analysis

import (
	"sort"

	"crossmarket/internal/domain"
)

// TopByLatestPrice returns the ids of the n coins with the highest current
// price, strictly descending. Ties keep their input order, so a stable
// input yields a stable result. When fewer than n coins exist the ids of
// everything available are returned together with InsufficientDataError;
// callers choose whether to fail or degrade.
func TopByLatestPrice(coins []domain.Coin, n int) ([]string, error) {
	sorted := make([]domain.Coin, len(coins))
	copy(sorted, coins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CurrentPrice > sorted[j].CurrentPrice
	})

	ids := make([]string, 0, n)
	for i := 0; i < len(sorted) && i < n; i++ {
		ids = append(ids, sorted[i].ID)
	}

	if len(coins) < n {
		return ids, &domain.InsufficientDataError{Want: n, Have: len(coins)}
	}
	return ids, nil
}
