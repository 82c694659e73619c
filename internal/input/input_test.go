package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"p", Export},
		{"P", Export},
		{"q", Exit},
		{"F4", Exit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKey("x")
	assert.Error(t, err)
}

func TestNoopSourceCloses(t *testing.T) {
	src := NewNoopSource()
	require.NoError(t, src.Start(t.Context()))
	require.NoError(t, src.Stop())
	_, ok := <-src.Events()
	assert.False(t, ok)
}

func TestNoopSourceStopTwice(t *testing.T) {
	src := NewNoopSource()
	require.NoError(t, src.Stop())
	assert.NotPanics(t, func() { assert.NoError(t, src.Stop()) })
}
