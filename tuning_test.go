package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuningTableJsonRoundTrip(t *testing.T) {
	table := DefaultTuningTable()
	table.WavePropagation = 31.5
	table.SnapDelay = time.Millisecond * 123
	table.FishCount = 11

	jsonBytes, err := TuningTableToJson(table)
	require.NoError(t, err)

	back, err := TuningTableFromJson(jsonBytes)
	require.NoError(t, err)

	assert.Equal(t, table, back)
}

func TestTuningTablePartialJsonKeepsDefaults(t *testing.T) {
	back, err := TuningTableFromJson([]byte(`{"wavePropagation": 99}`))
	require.NoError(t, err)

	assert.Equal(t, 99.0, back.WavePropagation)
	assert.Equal(t, DefaultTuningTable().SnapDelay, back.SnapDelay,
		"fields absent from the file keep their defaults")
}

func TestTuningTableBadJsonFallsBack(t *testing.T) {
	back, err := TuningTableFromJson([]byte(`{not json`))
	require.Error(t, err)
	assert.Equal(t, DefaultTuningTable(), back)
}
