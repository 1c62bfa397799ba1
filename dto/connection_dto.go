package dto

import "encoding/json"

// StarlinkAccountDTO accepts both the current {email, password} object shape
// and the legacy bare-string shape.
type StarlinkAccountDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *StarlinkAccountDTO) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d.Email = s
		return nil
	}
	type plain StarlinkAccountDTO
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = StarlinkAccountDTO(p)
	return nil
}

// VPNAccessDTO accepts both {ip, password} objects and legacy bare strings.
type VPNAccessDTO struct {
	IP       string `json:"ip"`
	Password string `json:"password"`
}

func (d *VPNAccessDTO) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d.IP = s
		return nil
	}
	type plain VPNAccessDTO
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = VPNAccessDTO(p)
	return nil
}

type CreateConnectionDTO struct {
	Station        string               `json:"station" binding:"required"`
	StarlinkEmails []StarlinkAccountDTO `json:"starlinkEmails"`
	VPNIPs         []VPNAccessDTO       `json:"vpnIps"`
	// Legacy single-email clients still post this field.
	StarlinkEmail string `json:"starlinkEmail"`
}

// UpdateConnectionDTO distinguishes an absent scheduledForDeletion from an
// explicit null (cancel) via the raw message.
type UpdateConnectionDTO struct {
	Station              *string               `json:"station,omitempty"`
	StarlinkEmails       *[]StarlinkAccountDTO `json:"starlinkEmails,omitempty"`
	VPNIPs               *[]VPNAccessDTO       `json:"vpnIps,omitempty"`
	ScheduledForDeletion json.RawMessage       `json:"scheduledForDeletion,omitempty"`
}
