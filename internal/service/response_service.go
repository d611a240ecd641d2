package service

// SettingsInput is what the user submits from the settings dialog.
type SettingsInput struct {
	DeviceHost    string
	DevicePort    int // 0 means the default port
	Simulation    bool
	Notifications *bool // nil keeps the current value
}
