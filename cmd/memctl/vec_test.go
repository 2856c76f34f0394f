package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec_Text(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return runVec([]string{"10", "20", "30", "40", "50"})
	})
	require.NoError(t, err)

	assertContains(t, output, []string{
		"Length: 5",
		"Capacity: 8",
		"Values: [10 20 30 40 50]",
		"Growth: [4 8]",
	})
}

func TestVec_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	vecElemSize = 8
	vecReserve = 16

	output, err := captureOutput(t, func() error {
		return runVec([]string{"1", "2", "3"})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var report vecReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 8, report.ElemSize)
	assert.Equal(t, 3, report.Len)
	assert.Equal(t, 16, report.Cap)
	assert.Empty(t, report.Growth)
	assert.Equal(t, []string{"1", "2", "3"}, report.Values)
	assert.Equal(t, 1, report.Stats.Allocs)
	assert.Equal(t, 1, report.Stats.LiveBlocks)
}

func TestVec_Budget(t *testing.T) {
	resetFlags(t)
	budget = 16

	_, err := captureOutput(t, func() error {
		return runVec([]string{"1", "2", "3", "4", "5"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push 5")
}

func TestVec_BadValue(t *testing.T) {
	resetFlags(t)
	vecElemSize = 1

	_, err := captureOutput(t, func() error {
		return runVec([]string{"300"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not fit")
}

func TestVec_UnknownAllocator(t *testing.T) {
	resetFlags(t)
	allocKind = "arena"

	_, err := captureOutput(t, func() error {
		return runVec([]string{"1"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown allocator")
}
