package application

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// sortByOrder sorts ascending by display rank, keeping insertion order
// among equal ranks.
func sortByOrder[T any](items []T, order func(*T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(order(&a), order(&b))
	})
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Invalid(field, "is required")
	}
	return nil
}

func requiredIfSet(field string, value *string) error {
	if value == nil {
		return nil
	}
	return required(field, *value)
}

func clockOrDefault(c helpers.Clock) helpers.Clock {
	if c == nil {
		return helpers.UTCNow
	}
	return func() time.Time { return c().UTC() }
}
