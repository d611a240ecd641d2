package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/service"
)

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestStatusAndConnectionCheck(t *testing.T) {
	mon := &mockMonitoring{snapshot: models.Snapshot{Connected: true, Duration: 30, DeviceHost: "10.0.0.5"}}
	conn := &mockConnectivity{connected: true}
	r := newTestRouter(&service.Service{Monitoring: mon, Connectivity: conn})

	w := doRequest(r, http.MethodGet, "/api/v1/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var snap models.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !snap.Connected || snap.DeviceHost != "10.0.0.5" {
		t.Fatalf("snapshot=%+v", snap)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/connection/check", "")
	if w.Code != http.StatusOK {
		t.Fatalf("check status=%d", w.Code)
	}
	var out struct {
		Connected bool `json:"connected"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Connected || conn.checks != 1 {
		t.Fatalf("connected=%v checks=%d", out.Connected, conn.checks)
	}
}

func TestMotorHandlers_Toggle(t *testing.T) {
	motor := &mockMotor{duration: 30}
	r := newTestRouter(&service.Service{Motor: motor, Monitoring: &mockMonitoring{}})

	w := doRequest(r, http.MethodGet, "/api/v1/motor", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"state":"off"}` {
		t.Fatalf("motor status=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/v1/motor/toggle", "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status=%d body=%s", w.Code, w.Body.String())
	}
	var resp ToggleResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.State != models.MotorOn || motor.toggleCalls != 1 {
		t.Fatalf("resp=%+v calls=%d", resp, motor.toggleCalls)
	}
}

func TestMotorHandlers_ToggleErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"disconnected", service.ErrDisconnected, http.StatusConflict},
		{"busy", service.ErrBusy, http.StatusConflict},
		{"device_unreachable", fmt.Errorf("switch motor: %w", device.ErrUnreachable), http.StatusBadGateway},
		{"device_status", fmt.Errorf("switch motor: %w", device.ErrUnexpectedStatus), http.StatusBadGateway},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			motor := &mockMotor{toggleErr: tc.err}
			r := newTestRouter(&service.Service{Motor: motor, Monitoring: &mockMonitoring{}})
			w := doRequest(r, http.MethodPost, "/api/v1/motor/toggle", "")
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestMotorHandlers_Duration(t *testing.T) {
	motor := &mockMotor{duration: 30}
	r := newTestRouter(&service.Service{Motor: motor})

	w := doRequest(r, http.MethodGet, "/api/v1/duration", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"duration":30}` {
		t.Fatalf("get status=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodPut, "/api/v1/duration", `{"duration":45}`)
	if w.Code != http.StatusOK || motor.lastSet != 45 || motor.duration != 45 {
		t.Fatalf("put status=%d lastSet=%d", w.Code, motor.lastSet)
	}

	w = doRequest(r, http.MethodPut, "/api/v1/duration", `{"duration":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status=%d", w.Code)
	}

	motor.durationErr = fmt.Errorf("wrapped: %w", service.ErrValidation)
	w = doRequest(r, http.MethodPut, "/api/v1/duration", `{"duration":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation status=%d", w.Code)
	}
}
