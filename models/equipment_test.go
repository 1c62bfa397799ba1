package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEquipmentIdentifier(t *testing.T) {
	valid := []string{
		"SN-88441",
		"88441",
		"0",
		"AA:BB:CC:DD:EE:FF",
		"aa:bb:cc:dd:ee:ff",
		"00:1A:2b:3C:4d:5E",
	}
	for _, s := range valid {
		assert.True(t, ValidEquipmentIdentifier(s), s)
	}

	invalid := []string{
		"",
		"not-a-serial!",
		"SN-",
		"SN-abc",
		"AA:BB:CC:DD:EE",
		"AA:BB:CC:DD:EE:GG",
		"AA-BB-CC-DD-EE-FF",
		"SN-123 ",
	}
	for _, s := range invalid {
		assert.False(t, ValidEquipmentIdentifier(s), s)
	}
}

func TestInvalidEquipmentIdentifiers(t *testing.T) {
	bad := InvalidEquipmentIdentifiers([]string{"SN-1", "nope", "88441", "also bad"})
	assert.Equal(t, []string{"nope", "also bad"}, bad)

	assert.Nil(t, InvalidEquipmentIdentifiers([]string{"SN-1", "88441"}))
}

func TestTransitionEquipment(t *testing.T) {
	cases := []struct {
		from, to EquipmentStatus
		ok       bool
	}{
		{EquipmentBought, EquipmentAvailable, true},
		{EquipmentBought, EquipmentInstalled, true},
		{EquipmentAvailable, EquipmentInstalled, true},
		{EquipmentInstalled, EquipmentAvailable, true},
		{EquipmentAvailable, EquipmentBought, false},
		{EquipmentInstalled, EquipmentBought, false},
		{EquipmentInstalled, EquipmentInstalled, false},
		{EquipmentBought, EquipmentBought, false},
	}

	for _, tc := range cases {
		got, err := TransitionEquipment(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, got)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, got)
		}
	}
}
