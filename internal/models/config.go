package models

// Theme values accepted for Config.Theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Default device endpoint used before any configuration is saved.
const (
	DefaultDeviceHost = "192.168.1.100"
	DefaultDevicePort = 80
)

// Config is the user configuration persisted as a single JSON document.
type Config struct {
	DeviceHost       string          `json:"esp32_ip"`
	DevicePort       int             `json:"esp32_port"`
	Simulation       bool            `json:"test_mode"`
	Notifications    bool            `json:"notifications"`
	Theme            string          `json:"theme,omitempty"`
	WidgetVisibility map[string]bool `json:"widgetVisibility,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is stored yet.
func DefaultConfig() Config {
	return Config{
		DeviceHost:    DefaultDeviceHost,
		DevicePort:    DefaultDevicePort,
		Notifications: true,
		Theme:         ThemeDark,
	}
}

// Clone returns a copy that does not share the widget map.
func (c Config) Clone() Config {
	out := c
	if c.WidgetVisibility != nil {
		out.WidgetVisibility = make(map[string]bool, len(c.WidgetVisibility))
		for k, v := range c.WidgetVisibility {
			out.WidgetVisibility[k] = v
		}
	}
	return out
}
