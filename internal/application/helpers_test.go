package application

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// stepClock returns start, start+1s, start+2s, ... on successive calls.
func stepClock(start time.Time) helpers.Clock {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *jsonstore.Store {
	t.Helper()
	s, err := jsonstore.Open(t.TempDir(), quietLogger())
	require.NoError(t, err)
	return s
}

func quietLogger() *logrus.Logger { return helpers.NewDiscardLogger() }

func ptr[T any](v T) *T { return &v }
