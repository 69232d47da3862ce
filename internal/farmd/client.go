package farmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher is the read side of the farmd API. It is implemented by *Client
// and can be stubbed in tests.
type Fetcher interface {
	FetchPrinters(ctx context.Context) ([]Printer, error)
	FetchStatus(ctx context.Context, printerID string) (*PrinterStatus, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the farmd HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7465"
	defaultUserAgent = "gantry/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchVersion retrieves the controller's name and version.
func (c *Client) FetchVersion(ctx context.Context) (VersionInfo, error) {
	if c == nil {
		return VersionInfo{}, fmt.Errorf("client is nil")
	}
	var payload VersionInfo
	if err := c.do(ctx, http.MethodGet, "/api/version", &payload); err != nil {
		return VersionInfo{}, err
	}
	return payload, nil
}

// FetchPrinters retrieves the fleet listing.
func (c *Client) FetchPrinters(ctx context.Context) ([]Printer, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload printerListResponse
	if err := c.do(ctx, http.MethodGet, "/api/printers", &payload); err != nil {
		return nil, err
	}
	return payload.Printers, nil
}

// FetchStatus retrieves the full status snapshot for one printer.
func (c *Client) FetchStatus(ctx context.Context, printerID string) (*PrinterStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(printerID) == "" {
		return nil, fmt.Errorf("printer id required")
	}
	var payload PrinterStatus
	if err := c.do(ctx, http.MethodGet, printerPath(printerID, "status"), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type moveRequest struct {
	Axis     string  `json:"axis"`
	Distance float64 `json:"distance"`
	FeedRate int     `json:"feedrate"`
	Confirm  string  `json:"confirm,omitempty"`
}

// MoveAxis jogs one axis by a signed distance in millimeters. An empty
// token issues the command unconfirmed; the controller may answer with a
// ConfirmationError instead of executing.
func (c *Client) MoveAxis(ctx context.Context, printerID, axis string, distance float64, feedRate int, token string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body := moveRequest{Axis: axis, Distance: distance, FeedRate: feedRate, Confirm: token}
	return c.command(ctx, printerPath(printerID, "move"), body)
}

type homeRequest struct {
	Axes    string `json:"axes"`
	Confirm string `json:"confirm,omitempty"`
}

// HomeAxes homes the given axis set, for example "XY".
func (c *Client) HomeAxes(ctx context.Context, printerID, axes, token string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "home"), homeRequest{Axes: axes, Confirm: token})
}

type gcodeRequest struct {
	Script  string `json:"script"`
	Confirm string `json:"confirm,omitempty"`
}

// SendGcode submits a raw G-code script for execution.
func (c *Client) SendGcode(ctx context.Context, printerID, script, token string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "gcode"), gcodeRequest{Script: script, Confirm: token})
}

type extruderRequest struct {
	Extruder int `json:"extruder"`
}

// SelectExtruder switches the active extruder (0 right, 1 left).
func (c *Client) SelectExtruder(ctx context.Context, printerID string, extruder int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "extruder"), extruderRequest{Extruder: extruder})
}

type loadRequest struct {
	Tray     int  `json:"tray"`
	Extruder *int `json:"extruder,omitempty"`
}

// LoadFilament asks the AMS to feed a tray. The extruder is optional; when
// nil the controller picks the one the tray's unit is routed to.
func (c *Client) LoadFilament(ctx context.Context, printerID string, tray int, extruder *int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "ams/load"), loadRequest{Tray: tray, Extruder: extruder})
}

// UnloadFilament retracts whatever filament is currently fed.
func (c *Client) UnloadFilament(ctx context.Context, printerID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "ams/unload"), struct{}{})
}

type refreshRequest struct {
	Unit int `json:"unit"`
	Slot int `json:"slot"`
}

// RefreshTray triggers an RFID re-scan of one slot.
func (c *Client) RefreshTray(ctx context.Context, printerID string, unit, slot int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.command(ctx, printerPath(printerID, "ams/refresh"), refreshRequest{Unit: unit, Slot: slot})
}

// commandResponse is the envelope every mutation endpoint returns.
type commandResponse struct {
	OK      bool          `json:"ok"`
	Error   string        `json:"error"`
	Confirm *Confirmation `json:"confirm"`
}

// command posts a mutation and folds the envelope: a present confirm block
// becomes a ConfirmationError, any other non-ok response a plain failure.
func (c *Client) command(ctx context.Context, path string, body any) error {
	var resp commandResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return err
	}
	if resp.Confirm != nil {
		return &ConfirmationError{Confirmation: *resp.Confirm}
	}
	if !resp.OK {
		msg := resp.Error
		if msg == "" {
			msg = "unspecified failure"
		}
		return fmt.Errorf("command rejected: %s", msg)
	}
	return nil
}

func printerPath(printerID, suffix string) string {
	return "/api/printers/" + url.PathEscape(printerID) + "/" + suffix
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, http.MethodPost, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
