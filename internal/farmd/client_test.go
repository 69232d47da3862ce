package farmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/printbed/gantry/internal/ams"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	humidity := 32
	color := "#aa00ff"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/version":
			_ = json.NewEncoder(w).Encode(VersionInfo{Name: "farmd", Version: "1.4.0"})
		case "/api/printers":
			_ = json.NewEncoder(w).Encode(printerListResponse{Printers: []Printer{
				{ID: "x1-01", Name: "X1 Carbon", Online: true, State: StateIdle},
			}})
		case "/api/printers/x1-01/status":
			_ = json.NewEncoder(w).Encode(PrinterStatus{
				Online:    true,
				State:     StateRunning,
				Extruders: 2,
				Stage:     ams.StageLoadingFilament,
				TrayNow:   5,
				Units: []ams.Unit{
					{ID: 0, Humidity: &humidity, Trays: []ams.Tray{{Slot: 0, Type: "PLA", Color: &color}}},
				},
				ExtruderMap: map[int]int{0: 0, 1: 1},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	info, err := c.FetchVersion(ctx)
	if err != nil {
		t.Fatalf("FetchVersion returned error: %v", err)
	}
	if info.Name != "farmd" || info.Version != "1.4.0" {
		t.Fatalf("FetchVersion = %#v, want farmd 1.4.0", info)
	}

	printers, err := c.FetchPrinters(ctx)
	if err != nil {
		t.Fatalf("FetchPrinters returned error: %v", err)
	}
	if len(printers) != 1 || printers[0].ID != "x1-01" {
		t.Fatalf("FetchPrinters = %#v, want 1 printer x1-01", printers)
	}

	status, err := c.FetchStatus(ctx, "x1-01")
	if err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if !status.Online || status.Stage != ams.StageLoadingFilament || status.TrayNow != 5 {
		t.Fatalf("FetchStatus = %#v, want online stage=24 trayNow=5", status)
	}
	if len(status.Units) != 1 || status.Units[0].Humidity == nil || *status.Units[0].Humidity != 32 {
		t.Fatalf("status units = %#v, want unit 0 humidity 32", status.Units)
	}
	if got := status.ExtruderMap[1]; got != 1 {
		t.Fatalf("ExtruderMap[1] = %d, want 1", got)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "gantry/") {
		t.Fatalf("User-Agent = %q, want gantry/*", gotUserAgent)
	}
}

func TestClient_FetchStatusRequiresPrinterID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchStatus(context.Background(), "  "); err == nil {
		t.Fatalf("FetchStatus returned nil error, want error")
	}
}

func TestClient_CommandBodies(t *testing.T) {
	t.Parallel()

	bodies := make(map[string]map[string]any)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies[r.URL.Path] = body
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(commandResponse{OK: true})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.MoveAxis(ctx, "p1", "X", -10, 3000, ""); err != nil {
		t.Fatalf("MoveAxis returned error: %v", err)
	}
	move := bodies["/api/printers/p1/move"]
	if move["axis"] != "X" || move["distance"] != -10.0 || move["feedrate"] != 3000.0 {
		t.Fatalf("move body = %v, want axis X distance -10 feedrate 3000", move)
	}
	if _, ok := move["confirm"]; ok {
		t.Fatalf("move body = %v, want confirm omitted when empty", move)
	}

	if err := c.HomeAxes(ctx, "p1", "XY", ""); err != nil {
		t.Fatalf("HomeAxes returned error: %v", err)
	}
	if got := bodies["/api/printers/p1/home"]["axes"]; got != "XY" {
		t.Fatalf("home axes = %v, want XY", got)
	}

	if err := c.SendGcode(ctx, "p1", "G29", "tok-42"); err != nil {
		t.Fatalf("SendGcode returned error: %v", err)
	}
	gcode := bodies["/api/printers/p1/gcode"]
	if gcode["script"] != "G29" || gcode["confirm"] != "tok-42" {
		t.Fatalf("gcode body = %v, want script G29 confirm tok-42", gcode)
	}

	if err := c.SelectExtruder(ctx, "p1", 1); err != nil {
		t.Fatalf("SelectExtruder returned error: %v", err)
	}
	if got := bodies["/api/printers/p1/extruder"]["extruder"]; got != 1.0 {
		t.Fatalf("extruder body = %v, want extruder 1", got)
	}

	left := 1
	if err := c.LoadFilament(ctx, "p1", 5, &left); err != nil {
		t.Fatalf("LoadFilament returned error: %v", err)
	}
	load := bodies["/api/printers/p1/ams/load"]
	if load["tray"] != 5.0 || load["extruder"] != 1.0 {
		t.Fatalf("load body = %v, want tray 5 extruder 1", load)
	}

	if err := c.LoadFilament(ctx, "p1", 6, nil); err != nil {
		t.Fatalf("LoadFilament returned error: %v", err)
	}
	if _, ok := bodies["/api/printers/p1/ams/load"]["extruder"]; ok {
		t.Fatalf("load body = %v, want extruder omitted when nil", bodies["/api/printers/p1/ams/load"])
	}

	if err := c.UnloadFilament(ctx, "p1"); err != nil {
		t.Fatalf("UnloadFilament returned error: %v", err)
	}

	if err := c.RefreshTray(ctx, "p1", 0, 2); err != nil {
		t.Fatalf("RefreshTray returned error: %v", err)
	}
	refresh := bodies["/api/printers/p1/ams/refresh"]
	if refresh["unit"] != 0.0 || refresh["slot"] != 2.0 {
		t.Fatalf("refresh body = %v, want unit 0 slot 2", refresh)
	}
}

func TestClient_ConfirmationRoundTrip(t *testing.T) {
	t.Parallel()

	var confirms []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		token, _ := body["confirm"].(string)
		confirms = append(confirms, token)

		w.Header().Set("Content-Type", "application/json")
		if token == "" {
			_ = json.NewEncoder(w).Encode(commandResponse{
				Confirm: &Confirmation{Token: "T", Warning: "W"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(commandResponse{OK: true})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	err = c.HomeAxes(ctx, "p1", "XY", "")
	ce, ok := AsConfirmation(err)
	if !ok {
		t.Fatalf("HomeAxes error = %v, want ConfirmationError", err)
	}
	if ce.Token != "T" || ce.Warning != "W" {
		t.Fatalf("confirmation = %#v, want token T warning W", ce.Confirmation)
	}

	// Approval re-issues the same command with the token attached.
	if err := c.HomeAxes(ctx, "p1", "XY", ce.Token); err != nil {
		t.Fatalf("confirmed HomeAxes returned error: %v", err)
	}
	if len(confirms) != 2 || confirms[0] != "" || confirms[1] != "T" {
		t.Fatalf("confirm tokens seen = %v, want [\"\" \"T\"]", confirms)
	}
}

func TestClient_CommandRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(commandResponse{OK: false, Error: "axis jammed"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.MoveAxis(context.Background(), "p1", "Z", 1, 1000, "")
	if err == nil || !strings.Contains(err.Error(), "axis jammed") {
		t.Fatalf("MoveAxis error = %v, want rejection with reason", err)
	}
	if _, ok := AsConfirmation(err); ok {
		t.Fatalf("plain rejection decoded as confirmation: %v", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/version":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/printers":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchVersion error = %v, want decode response error", err)
	}

	_, err = c.FetchPrinters(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchPrinters error = %v, want status 500 error", err)
	}
}
