package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/scrubbing/internal/config"
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/renderer/backend"
)

func newTestApp(t *testing.T, edit func(*config.Config)) (*Application, *backend.NullBackend) {
	t.Helper()
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if edit != nil {
		edit(app.cfg)
	}
	nb := backend.NewNullBackend(80, 24)
	if err := nb.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	app.setup(nb)
	t.Cleanup(app.teardown)
	return app, nb
}

func (app *Application) fieldText(id string) string {
	for _, f := range app.fields {
		if f.cfg.ID == id {
			return f.element.Text()
		}
	}
	return "<missing>"
}

func mouse(app *Application, x, y int, buttons backend.MouseButton) {
	_ = app.surface.HandleBackendEvent(backend.Event{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButtons: buttons})
}

func drag(app *Application, row, fromX, toX int) {
	mouse(app, fromX, row, backend.MousePrimary)
	mouse(app, toX, row, backend.MousePrimary)
	mouse(app, toX, row, backend.MouseNone)
}

func TestSetupBuildsDefaultFields(t *testing.T) {
	app, _ := newTestApp(t, nil)

	if got := len(app.Bindings()); got != 5 {
		t.Fatalf("Bindings() = %d, want 5", got)
	}

	tests := map[string]string{
		"width":   "120",
		"height":  "80",
		"opacity": "50",
		"x":       "12",
		"angle":   "90deg",
	}
	for id, want := range tests {
		if got := app.fieldText(id); got != want {
			t.Errorf("field %s text = %q, want %q", id, got, want)
		}
	}

	if app.status == nil || app.status.Text() != "gestures 0  changes 0" {
		t.Errorf("status = %v", app.status)
	}
	if app.Document() == nil {
		t.Error("Document() should be set after build")
	}
}

func TestFieldsAreLaidOutInRows(t *testing.T) {
	app, _ := newTestApp(t, nil)

	for i, f := range app.fields {
		b := f.element.Bounds()
		if b.Top != fieldRow(i) || b.Left != marginLeft {
			t.Errorf("field %s at (%d,%d), want (%d,%d)", f.cfg.ID, b.Top, b.Left, fieldRow(i), marginLeft)
		}
		if !strings.HasPrefix(f.element.Label(), f.cfg.Label) {
			t.Errorf("label %q should start with %q", f.element.Label(), f.cfg.Label)
		}
	}
	if got := app.status.Bounds().Top; got != fieldRow(len(app.fields)) {
		t.Errorf("status row = %d, want %d", got, fieldRow(len(app.fields)))
	}
}

func TestScrubDefaultFields(t *testing.T) {
	app, _ := newTestApp(t, nil)

	// width: horizontal, divider 2
	drag(app, fieldRow(0), 20, 26)
	if got := app.fieldText("width"); got != "123" {
		t.Errorf("width = %q, want 123", got)
	}

	// height: vertical, dragging up increases
	mouse(app, 20, fieldRow(1), backend.MousePrimary)
	mouse(app, 20, fieldRow(1)-2, backend.MousePrimary)
	mouse(app, 20, fieldRow(1)-2, backend.MouseNone)
	if got := app.fieldText("height"); got != "82" {
		t.Errorf("height = %q, want 82", got)
	}

	// opacity: clamped to 0..100
	drag(app, fieldRow(2), 10, 70)
	if got := app.fieldText("opacity"); got != "100" {
		t.Errorf("opacity = %q, want 100", got)
	}

	// x: stored in the shared document
	drag(app, fieldRow(3), 10, 15)
	if got := app.fieldText("x"); got != "17" {
		t.Errorf("x = %q, want 17", got)
	}
	if v, err := app.Document().Int("box.x"); err != nil || v != 17 {
		t.Errorf("box.x = %d, %v; want 17", v, err)
	}

	// angle: formatted by the script
	drag(app, fieldRow(4), 10, 13)
	if got := app.fieldText("angle"); got != "93deg" {
		t.Errorf("angle = %q, want 93deg", got)
	}

	snap := app.Metrics().Snapshot()
	if snap.Gestures != 5 || snap.Changes != 5 || snap.Last != "angle" {
		t.Errorf("metrics = %+v", snap)
	}
	if got := app.status.Text(); got != snap.String() {
		t.Errorf("status = %q, want %q", got, snap.String())
	}
}

func TestWheelStepsField(t *testing.T) {
	app, _ := newTestApp(t, nil)

	mouse(app, 20, fieldRow(0), backend.MouseWheelUp)
	if got := app.fieldText("width"); got != "119" {
		t.Errorf("width after wheel up = %q, want 119", got)
	}
	mouse(app, 20, fieldRow(0), backend.MouseWheelDown)
	mouse(app, 20, fieldRow(0), backend.MouseWheelDown)
	if got := app.fieldText("width"); got != "121" {
		t.Errorf("width after wheel down = %q, want 121", got)
	}
	if got := app.Metrics().Snapshot().Gestures; got != 3 {
		t.Errorf("gestures = %d, want 3", got)
	}
}

func TestRefusedStartIsCountedAsAbort(t *testing.T) {
	app, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.Fields[0].Value = "wide"
	})

	mouse(app, 20, fieldRow(0), backend.MousePrimary)
	if app.surface.Captured() != nil {
		t.Error("a refused press should not mark the field active")
	}
	mouse(app, 30, fieldRow(0), backend.MousePrimary)
	mouse(app, 30, fieldRow(0), backend.MouseNone)

	if got := app.fieldText("width"); got != "wide" {
		t.Errorf("width = %q, want unchanged", got)
	}
	snap := app.Metrics().Snapshot()
	if snap.Aborted != 1 || snap.Gestures != 0 {
		t.Errorf("metrics = %+v, want one abort", snap)
	}
	if !strings.Contains(app.status.Text(), "aborted 1") {
		t.Errorf("status = %q", app.status.Text())
	}
}

func TestBuildSkipsBrokenFields(t *testing.T) {
	app, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.Document = "not json"
		cfg.Fields = []config.Field{
			{ID: "a", Value: "1", Adapters: []string{"nope"}},
			{ID: "b", Value: "2", Adapters: []string{"script"}, Script: "function start("},
			{ID: "c", Value: "3", Drivers: []string{"wheel"}},
		}
	})

	if got := len(app.fields); got != 2 {
		t.Fatalf("fields = %d, want 2", got)
	}
	if app.fields[0].cfg.ID != "a" || app.fields[1].cfg.ID != "c" {
		t.Errorf("fields = %s, %s", app.fields[0].cfg.ID, app.fields[1].cfg.ID)
	}
	if got := app.Document().String(); got != "{}" {
		t.Errorf("Document() = %q, want {}", got)
	}

	// the unknown adapter falls back to the element text
	drag(app, fieldRow(0), 10, 12)
	if got := app.fieldText("a"); got != "3" {
		t.Errorf("a = %q, want 3", got)
	}

	// wheel only: dragging does nothing
	drag(app, fieldRow(1), 10, 12)
	if got := app.fieldText("c"); got != "3" {
		t.Errorf("c = %q, want 3", got)
	}
}

func TestTeardownRemovesEverything(t *testing.T) {
	app, _ := newTestApp(t, nil)
	bindings := app.Bindings()

	app.unbuild()

	for _, b := range bindings {
		if !b.Removed() {
			t.Errorf("binding %s not removed", b.Target().ID())
		}
	}
	if got := len(app.surface.Elements()); got != 0 {
		t.Errorf("elements = %d, want 0", got)
	}
	if len(app.watchIDs) != 0 || app.status != nil {
		t.Error("status and listeners should be cleared")
	}

	app.unbuild()
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		quit bool
	}{
		{"escape", backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}, true},
		{"ctrl-c", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlC}, true},
		{"q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}, true},
		{"Q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'Q'}, true},
		{"x", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'}, false},
		{"enter", backend.Event{Type: backend.EventKey, Key: backend.KeyEnter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handleKey(tt.ev)
			if got := errors.Is(err, ErrQuit); got != tt.quit {
				t.Errorf("handleKey() = %v, quit want %v", err, tt.quit)
			}
		})
	}
}

func TestRunRequiresBackend(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
}

func TestSetBackendWhileRunning(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	app.running.Store(true)
	if err := app.SetBackend(backend.NewNullBackend(1, 1)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend() = %v, want ErrAlreadyRunning", err)
	}
}

func TestNewWithMissingConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load config" {
		t.Fatalf("New() = %v, want load config error", err)
	}
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("error should wrap ErrFileNotFound: %v", err)
	}
}

func startRun(t *testing.T, app *Application, nb *backend.NullBackend) (context.CancelFunc, <-chan error) {
	t.Helper()
	if err := app.SetBackend(nb); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// The first render happens after setup.
	deadline := time.Now().Add(2 * time.Second)
	for nb.ShowCount() == 0 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("surface did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cancel, done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func onLoop(t *testing.T, app *Application, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ran := make(chan struct{})
	if err := app.surface.Invoke(ctx, func() { fn(); close(ran) }); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	<-ran
}

func TestRunQuitsOnKey(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	nb := backend.NewNullBackend(80, 24)
	_, done := startRun(t, app, nb)

	row := fieldRow(3)
	nb.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 20, MouseY: row, MouseButtons: backend.MousePrimary})
	nb.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 25, MouseY: row, MouseButtons: backend.MousePrimary})
	nb.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 25, MouseY: row})
	nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'})

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if v, err := app.Document().Int("box.x"); err != nil || v != 17 {
		t.Errorf("box.x = %d, %v; want 17", v, err)
	}
	if app.fields != nil {
		t.Error("fields should be torn down after Run")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	cancel, done := startRun(t, app, backend.NewNullBackend(80, 24))

	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestReloadRebuildsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrub.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("[[field]]\nid = \"a\"\nvalue = \"1\"\n")

	app, err := New(Options{ConfigPath: path})
	if err != nil {
		t.Fatal(err)
	}
	nb := backend.NewNullBackend(80, 24)
	cancel, done := startRun(t, app, nb)
	defer func() {
		cancel()
		waitRun(t, done)
	}()

	var n int
	onLoop(t, app, func() { n = len(app.Bindings()) })
	if n != 1 {
		t.Fatalf("bindings = %d, want 1", n)
	}

	write("[[field]]\nid = \"a\"\nvalue = \"1\"\n\n[[field]]\nid = \"b\"\nvalue = \"2\"\n")
	app.reload(context.Background())

	var ids []string
	onLoop(t, app, func() {
		for _, f := range app.fields {
			ids = append(ids, f.cfg.ID)
		}
	})
	if strings.Join(ids, ",") != "a,b" {
		t.Errorf("fields after reload = %v, want [a b]", ids)
	}
	if got := len(app.Config().Fields); got != 2 {
		t.Errorf("Config().Fields = %d, want 2", got)
	}

	// A broken file keeps the current fields.
	write("[[field]]\nid = \n")
	app.reload(context.Background())
	if got := len(app.Config().Fields); got != 2 {
		t.Errorf("Config().Fields after bad reload = %d, want 2", got)
	}
}

func TestNewOpensLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrub.log")

	app, err := New(Options{LogFile: path, LogLevel: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nb := backend.NewNullBackend(80, 24)
	if err := nb.Init(); err != nil {
		t.Fatal(err)
	}
	app.setup(nb)
	app.teardown()

	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "built 5 of 5 field(s)") {
		t.Errorf("log file missing build line:\n%s", data)
	}
}

func TestReloadedLogLevelReachesBindings(t *testing.T) {
	var buf bytes.Buffer
	app, err := New(Options{Logger: logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nb := backend.NewNullBackend(80, 24)
	if err := nb.Init(); err != nil {
		t.Fatal(err)
	}
	app.setup(nb)
	t.Cleanup(app.teardown)

	if strings.Contains(buf.String(), "bound with") {
		t.Fatalf("binding debug output at info level:\n%s", buf.String())
	}

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	app.applyLogLevel(cfg)
	app.unbuild()
	app.build(cfg)

	out := buf.String()
	if !strings.Contains(out, "bound with") || !strings.Contains(out, "component=registry") {
		t.Errorf("registry bindings did not pick up the debug level:\n%s", out)
	}
}

func TestCommandLineLevelWinsOverReload(t *testing.T) {
	var buf bytes.Buffer
	app, err := New(Options{
		LogLevel: "warn",
		Logger:   logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	app.applyLogLevel(cfg)

	if got := app.logger.Level(); got != logging.LevelWarn {
		t.Errorf("level = %v, want WARN", got)
	}
}
