package application

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
)

func TestTagParser_Parse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "array", raw: `["go", " web ", ""]`, want: []string{"go", "web"}},
		{name: "encoded string", raw: `"[\"go\",\"cli\"]"`, want: []string{"go", "cli"}},
		{name: "null", raw: `null`, want: []string{}},
		{name: "empty", raw: ``, want: []string{}},
		{name: "empty string", raw: `""`, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TagParser{}.Parse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagParser_StrictRejectsMalformed(t *testing.T) {
	for _, raw := range []string{`"not json"`, `{"a":1}`, `[1,2]`} {
		_, err := TagParser{}.Parse([]byte(raw))
		assert.ErrorIs(t, err, apperr.ErrValidation, raw)
	}
	_, err := TagParser{}.ParseString("go, web")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTagParser_LenientDegradesToEmpty(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := TagParser{Lenient: true, Logger: logger}

	got, err := p.ParseString("go, web")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
