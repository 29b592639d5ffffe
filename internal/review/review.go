// Package review decides which materials are due for a stock review.
package review

import (
	"fmt"
	"time"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// DefaultIntervalDays is the review interval used when configuration does not
// say otherwise.
const DefaultIntervalDays = 3

// Due filters materials down to those whose review has lapsed: a material is
// due iff lastReview + intervalDays <= today, dates compared at calendar
// granularity. The boundary day counts as due. Output order matches input
// order. intervalDays must be non-negative; there is no upper bound.
func Due(materials []types.Material, intervalDays int, today time.Time) ([]types.Material, error) {
	if intervalDays < 0 {
		return nil, fmt.Errorf("interval days %d: %w", intervalDays, types.ErrValidation)
	}

	day := types.Truncate(today)
	var due []types.Material
	for _, m := range materials {
		next := types.Truncate(m.NextReview(intervalDays))
		if !next.After(day) {
			due = append(due, m)
		}
	}
	return due, nil
}
