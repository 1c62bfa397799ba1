package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBatchStats(t *testing.T) {
	items := []Equipment{
		{Status: EquipmentInstalled},
		{Status: EquipmentInstalled},
		{Status: EquipmentAvailable},
		{Status: EquipmentAvailable},
		{Status: EquipmentBought},
	}

	s := ComputeBatchStats(items)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Available) // bought counts as available stock
	assert.Equal(t, 2, s.Installed)
	assert.Equal(t, 3, s.Remaining)
	assert.False(t, s.Finished)
}

func TestComputeBatchStatsFinished(t *testing.T) {
	items := []Equipment{
		{Status: EquipmentInstalled},
		{Status: EquipmentInstalled},
	}

	s := ComputeBatchStats(items)

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 0, s.Remaining)
	assert.True(t, s.Finished)
}

func TestComputeBatchStatsEmpty(t *testing.T) {
	s := ComputeBatchStats(nil)

	assert.Equal(t, 0, s.Total)
	assert.True(t, s.Finished)
}

func TestBatchStatsFromCountsMatchesCompute(t *testing.T) {
	items := []Equipment{
		{Status: EquipmentBought},
		{Status: EquipmentAvailable},
		{Status: EquipmentInstalled},
		{Status: EquipmentInstalled},
	}
	counts := map[EquipmentStatus]int{
		EquipmentBought:    1,
		EquipmentAvailable: 1,
		EquipmentInstalled: 2,
	}

	assert.Equal(t, ComputeBatchStats(items), BatchStatsFromCounts(counts))
}
