// Package metrics exposes the panel's view of the device as Prometheus series.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Check results used as label values.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics holds every collector of the panel. A nil *Metrics is valid and records nothing.
type Metrics struct {
	deviceConnected  prometheus.Gauge
	motorOn          prometheus.Gauge
	simulation       prometheus.Gauge
	connectivity     *prometheus.CounterVec
	motorCommands    *prometheus.CounterVec
	scheduleTriggers prometheus.Counter
	historyEntries   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		deviceConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "irrigation_device_connected",
			Help: "1 when the last liveness check succeeded.",
		}),
		motorOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "irrigation_motor_on",
			Help: "Current state of the irrigation motor.",
		}),
		simulation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "irrigation_simulation_mode",
			Help: "1 when the panel runs against the simulator.",
		}),
		connectivity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "irrigation_connectivity_checks_total",
			Help: "Liveness checks by result.",
		}, []string{"result"}),
		motorCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "irrigation_motor_commands_total",
			Help: "Motor commands by target state, trigger and result.",
		}, []string{"state", "trigger", "result"}),
		scheduleTriggers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "irrigation_schedule_triggers_total",
			Help: "Schedules that fired.",
		}),
		historyEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "irrigation_history_entries",
			Help: "Entries currently kept in the irrigation history.",
		}),
	}
	reg.MustRegister(
		m.deviceConnected,
		m.motorOn,
		m.simulation,
		m.connectivity,
		m.motorCommands,
		m.scheduleTriggers,
		m.historyEntries,
	)
	return m
}

func (m *Metrics) ConnectivityChecked(connected bool) {
	if m == nil {
		return
	}
	m.deviceConnected.Set(boolToFloat(connected))
	if connected {
		m.connectivity.WithLabelValues(ResultOK).Inc()
	} else {
		m.connectivity.WithLabelValues(ResultFailed).Inc()
	}
}

func (m *Metrics) MotorCommand(on bool, trigger string, err error) {
	if m == nil {
		return
	}
	state, result := "off", ResultOK
	if on {
		state = "on"
	}
	if err != nil {
		result = ResultFailed
	}
	m.motorCommands.WithLabelValues(state, trigger, result).Inc()
}

func (m *Metrics) MotorState(on bool) {
	if m == nil {
		return
	}
	m.motorOn.Set(boolToFloat(on))
}

func (m *Metrics) SimulationMode(on bool) {
	if m == nil {
		return
	}
	m.simulation.Set(boolToFloat(on))
}

func (m *Metrics) ScheduleTriggered() {
	if m == nil {
		return
	}
	m.scheduleTriggers.Inc()
}

func (m *Metrics) HistorySize(n int) {
	if m == nil {
		return
	}
	m.historyEntries.Set(float64(n))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
