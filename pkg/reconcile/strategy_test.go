package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want reconcile.Strategy
	}{
		{"", reconcile.LastWriteWins},
		{"last", reconcile.LastWriteWins},
		{" LAST ", reconcile.LastWriteWins},
		{"first", reconcile.FirstWriteWins},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := reconcile.ParseStrategy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Name(), got.Name())
		})
	}

	_, err := reconcile.ParseStrategy("closest")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "last, first")
}

func TestStrategiesDescribeThemselves(t *testing.T) {
	for _, s := range reconcile.Strategies() {
		assert.NotEmpty(t, s.Name())
		assert.NotEmpty(t, s.Description())
	}
}
