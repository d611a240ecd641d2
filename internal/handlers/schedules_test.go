package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/service"
)

func TestScheduleHandlers_CRUD(t *testing.T) {
	sched := &mockSchedules{list: []models.Schedule{{ID: 7, Time: "06:00", Days: []int{0, 2, 4}, Enabled: true}}}
	r := newTestRouter(&service.Service{Schedules: sched})

	w := doRequest(r, http.MethodGet, "/api/v1/schedules", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list []models.Schedule
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 || list[0].ID != 7 {
		t.Fatalf("list=%+v err=%v", list, err)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/schedules", `{"time":"06:00","days":[0,2,4],"enabled":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if sched.lastID != 0 || sched.lastInput.Time != "06:00" || len(sched.lastInput.Days) != 3 || !sched.lastInput.Enabled {
		t.Fatalf("create passed id=%d input=%+v", sched.lastID, sched.lastInput)
	}

	w = doRequest(r, http.MethodPut, "/api/v1/schedules/7", `{"time":"07:30","days":[1],"enabled":false}`)
	if w.Code != http.StatusOK || sched.lastID != 7 || sched.lastInput.Time != "07:30" {
		t.Fatalf("update status=%d id=%d input=%+v", w.Code, sched.lastID, sched.lastInput)
	}

	w = doRequest(r, http.MethodDelete, "/api/v1/schedules/7", "")
	if w.Code != http.StatusOK || len(sched.deleted) != 1 || sched.deleted[0] != 7 {
		t.Fatalf("delete status=%d deleted=%v", w.Code, sched.deleted)
	}
}

func TestScheduleHandlers_Errors(t *testing.T) {
	sched := &mockSchedules{}
	r := newTestRouter(&service.Service{Schedules: sched})

	if w := doRequest(r, http.MethodPut, "/api/v1/schedules/abc", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status=%d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/api/v1/schedules/0", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("zero id status=%d", w.Code)
	}
	if len(sched.deleted) != 0 {
		t.Fatalf("service called with invalid id")
	}

	sched.err = fmt.Errorf("%w", service.ErrValidation)
	w := doRequest(r, http.MethodPost, "/api/v1/schedules", `{"time":"","days":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation status=%d", w.Code)
	}

	sched.err = fmt.Errorf("save schedule: %w", device.ErrUnreachable)
	w = doRequest(r, http.MethodPost, "/api/v1/schedules", `{"time":"06:00","days":[0]}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("device failure status=%d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != errSaveSchedule {
		t.Fatalf("error message=%q", body["error"])
	}
}
