package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"irrigation_panel/internal/models"
	"irrigation_panel/internal/service"
)

func TestLogsHandler_ListFilterClearRead(t *testing.T) {
	logs := &mockEventLog{
		entries: []models.LogEntry{
			{ID: "e2", Timestamp: "06:00:02", Message: "Connection error: timeout", Type: models.SeverityError},
			{ID: "e1", Timestamp: "06:00:01", Message: "Application initialized", Type: models.SeveritySuccess},
		},
		unread: 2,
	}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := doRequest(r, http.MethodGet, "/api/v1/logs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int               `json:"count"`
		Unread  int               `json:"unread"`
		Entries []models.LogEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || out.Unread != 2 || out.Entries[0].ID != "e2" {
		t.Fatalf("unexpected response: %+v", out)
	}

	// type is normalized to lower case
	w = doRequest(r, http.MethodGet, "/api/v1/logs?type=ERROR", "")
	out.Entries = nil
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if w.Code != http.StatusOK || out.Count != 1 || out.Entries[0].Type != models.SeverityError {
		t.Fatalf("filtered status=%d out=%+v", w.Code, out)
	}
	if len(logs.entries) != 2 {
		t.Fatalf("filter mutated the log")
	}

	if w := doRequest(r, http.MethodGet, "/api/v1/logs?type=debug", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid type status=%d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/logs/read", "")
	if w.Code != http.StatusOK || logs.unread != 0 {
		t.Fatalf("read status=%d unread=%d", w.Code, logs.unread)
	}

	w = doRequest(r, http.MethodDelete, "/api/v1/logs", "")
	out.Entries = nil
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if w.Code != http.StatusOK || logs.cleared != 1 || out.Count != 1 || out.Entries[0].Message != "Logs cleared" {
		t.Fatalf("clear status=%d out=%+v", w.Code, out)
	}
}

func TestHistoryHandlers(t *testing.T) {
	activity := make([]int, 24)
	activity[6] = 2
	hist := &mockHistory{
		entries:  []models.HistoryEntry{{ID: 1, Type: models.TriggerScheduled, Duration: 30, Date: "15/10/2026", Time: "06:00"}},
		activity: activity,
	}
	r := newTestRouter(&service.Service{History: hist})

	w := doRequest(r, http.MethodGet, "/api/v1/history", "")
	var out struct {
		Count   int                   `json:"count"`
		Entries []models.HistoryEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if w.Code != http.StatusOK || out.Count != 1 || out.Entries[0].Type != models.TriggerScheduled {
		t.Fatalf("history status=%d out=%+v", w.Code, out)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/history/activity", "")
	var act struct {
		Hours []int `json:"hours"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &act)
	if w.Code != http.StatusOK || len(act.Hours) != 24 || act.Hours[6] != 2 {
		t.Fatalf("activity status=%d hours=%v", w.Code, act.Hours)
	}
}
