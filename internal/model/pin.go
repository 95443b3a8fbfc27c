package model

// PinProfile is a device-local quick-switch profile for the shared tablet.
// It mirrors a family member's identity but lives only on this device; the
// PIN gates profile switching, not the backend session.
type PinProfile struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Pin      string `json:"pin"`
	IsParent bool   `json:"isParent"`
	Avatar   string `json:"avatar,omitempty"`
	Color    string `json:"color,omitempty"`
}

// TabletConfig is the device-local tablet/PIN configuration, persisted as
// one blob in the device store and rewritten on every change.
type TabletConfig struct {
	Enabled               bool         `json:"enabled"`
	AutoLogoutOnScreenOff bool         `json:"autoLogoutOnScreenOff"`
	Profiles              []PinProfile `json:"profiles"`
}

// Profile returns the profile with the given id, or nil.
func (c *TabletConfig) Profile(id string) *PinProfile {
	for i := range c.Profiles {
		if c.Profiles[i].ID == id {
			return &c.Profiles[i]
		}
	}
	return nil
}
