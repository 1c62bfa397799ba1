package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConnectionDTOAcceptsObjectShape(t *testing.T) {
	body := `{
		"station": "hilltop",
		"starlinkEmails": [{"email": "a@sat.example", "password": "pw"}],
		"vpnIps": [{"ip": "10.0.0.1", "password": "vpnpw"}]
	}`

	var dto CreateConnectionDTO
	require.NoError(t, json.Unmarshal([]byte(body), &dto))

	require.Len(t, dto.StarlinkEmails, 1)
	assert.Equal(t, "a@sat.example", dto.StarlinkEmails[0].Email)
	assert.Equal(t, "pw", dto.StarlinkEmails[0].Password)
	require.Len(t, dto.VPNIPs, 1)
	assert.Equal(t, "10.0.0.1", dto.VPNIPs[0].IP)
	assert.Equal(t, "vpnpw", dto.VPNIPs[0].Password)
}

func TestCreateConnectionDTOAcceptsLegacyStrings(t *testing.T) {
	body := `{
		"station": "hilltop",
		"starlinkEmails": ["old@sat.example"],
		"vpnIps": ["192.168.1.5"]
	}`

	var dto CreateConnectionDTO
	require.NoError(t, json.Unmarshal([]byte(body), &dto))

	require.Len(t, dto.StarlinkEmails, 1)
	assert.Equal(t, "old@sat.example", dto.StarlinkEmails[0].Email)
	assert.Empty(t, dto.StarlinkEmails[0].Password)
	require.Len(t, dto.VPNIPs, 1)
	assert.Equal(t, "192.168.1.5", dto.VPNIPs[0].IP)
}

func TestUpdateConnectionDTOScheduledForDeletion(t *testing.T) {
	var absent UpdateConnectionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"vpnIps": []}`), &absent))
	assert.Nil(t, absent.ScheduledForDeletion)

	var explicitNull UpdateConnectionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"scheduledForDeletion": null}`), &explicitNull))
	assert.Equal(t, json.RawMessage("null"), explicitNull.ScheduledForDeletion)

	var withValue UpdateConnectionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"scheduledForDeletion": "2024-03-04T12:00:00Z"}`), &withValue))
	assert.Equal(t, json.RawMessage(`"2024-03-04T12:00:00Z"`), withValue.ScheduledForDeletion)
}
