package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"irrigation_panel/internal/models"
)

const (
	pathStatus     = "/api/status"
	pathMotorState = "/api/motor/state"
	pathMotorOn    = "/api/motor/on"
	pathMotorOff   = "/api/motor/off"
	pathDuration   = "/api/duration"
	pathSchedules  = "/api/schedules"

	defaultRequestTimeout = 10 * time.Second
	maxBodyBytes          = 1 << 20
)

// Client implements API over the controller's HTTP endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for http://host:port. A zero timeout uses the default.
func NewClient(host string, port int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: "http://" + net.JoinHostPort(host, strconv.Itoa(port)),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the root URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

type durationBody struct {
	Duration int `json:"duration"`
}

// Status performs the liveness check.
func (c *Client) Status(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathStatus, nil, nil)
}

// MotorState returns true when the device reports the motor as on.
func (c *Client) MotorState(ctx context.Context) (bool, error) {
	var st models.MotorState
	if err := c.do(ctx, http.MethodGet, pathMotorState, nil, &st); err != nil {
		return false, err
	}
	return st.State == models.MotorOn, nil
}

func (c *Client) MotorOn(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathMotorOn, nil, nil)
}

func (c *Client) MotorOff(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathMotorOff, nil, nil)
}

// Duration returns the configured run duration in seconds.
func (c *Client) Duration(ctx context.Context) (int, error) {
	var body durationBody
	if err := c.do(ctx, http.MethodGet, pathDuration, nil, &body); err != nil {
		return 0, err
	}
	return body.Duration, nil
}

func (c *Client) SetDuration(ctx context.Context, seconds int) error {
	return c.do(ctx, http.MethodPost, pathDuration, durationBody{Duration: seconds}, nil)
}

func (c *Client) Schedules(ctx context.Context) ([]models.Schedule, error) {
	out := make([]models.Schedule, 0)
	if err := c.do(ctx, http.MethodGet, pathSchedules, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSchedule(ctx context.Context, in models.ScheduleInput) error {
	return c.do(ctx, http.MethodPost, pathSchedules, in, nil)
}

func (c *Client) UpdateSchedule(ctx context.Context, id int64, in models.ScheduleInput) error {
	return c.do(ctx, http.MethodPut, schedulePath(id), in, nil)
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, schedulePath(id), nil, nil)
}

func schedulePath(id int64) string {
	return pathSchedules + "/" + strconv.FormatInt(id, 10)
}

// do sends one request. body is JSON encoded when non-nil; out is decoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return fmt.Errorf("%w: %s %s: status %d", ErrUnexpectedStatus, method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}
