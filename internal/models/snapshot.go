package models

// MotorState is the on/off state reported by GET /api/motor/state.
type MotorState struct {
	State string `json:"state"` // on | off
}

// Motor state values.
const (
	MotorOn  = "on"
	MotorOff = "off"
)

// Snapshot is the read model pushed to panel clients.
type Snapshot struct {
	Connected  bool       `json:"connected"`
	Simulation bool       `json:"simulation"`
	MotorOn    bool       `json:"motor_on"`
	Duration   int        `json:"duration"`
	Schedules  []Schedule `json:"schedules"`
	UnreadLogs int        `json:"unread_logs"`
	Theme      string     `json:"theme"`
	DeviceHost string     `json:"device_host"`
	DevicePort int        `json:"device_port"`
}
