package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yuzhayo/launcher"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    float64
		wantErr bool
	}{
		{"800x600", 800, 600, false},
		{" 1024X768 ", 1024, 768, false},
		{"12.5x3", 12.5, 3, false},
		{"800", 0, 0, true},
		{"axb", 0, 0, true},
		{"800x", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %g, %g, want %g, %g", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestParsePair(t *testing.T) {
	x, y, err := parsePair(" 0.5, -0.25")
	if err != nil || x != 0.5 || y != -0.25 {
		t.Errorf("parsePair = %g, %g, %v", x, y, err)
	}
	for _, bad := range []string{"", "1", "1,", "a,1"} {
		if _, _, err := parsePair(bad); err == nil {
			t.Errorf("parsePair(%q) should fail", bad)
		}
	}
}

func TestSizeOrConfig(t *testing.T) {
	cfg := launcher.DefaultConfig()
	w, h, err := sizeOrConfig("", cfg)
	if err != nil || w != float64(cfg.Width) || h != float64(cfg.Height) {
		t.Errorf("sizeOrConfig(\"\") = %g, %g, %v", w, h, err)
	}
	if w, h, _ := sizeOrConfig("10x20", cfg); w != 10 || h != 20 {
		t.Errorf("sizeOrConfig(10x20) = %g, %g", w, h)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should give the default logger")
	}
	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("logger not carried by context")
	}
	l.Debug("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestMapCommand(t *testing.T) {
	out, err := runCLI(t, "map", "--size", "800x600", "--norm", "0.5,0.5")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "left=550 top=150" {
		t.Errorf("norm output = %q", out)
	}

	out, err = runCLI(t, "map", "--size", "800x600", "--pixel", "550,150")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "x=0.5 y=0.5" {
		t.Errorf("pixel output = %q", out)
	}

	if _, err := runCLI(t, "map", "--size", "800x600"); err == nil {
		t.Error("expected error without --norm or --pixel")
	}
	if _, err := runCLI(t, "map", "--norm", "0,0", "--pixel", "0,0"); err == nil {
		t.Error("expected error with both --norm and --pixel")
	}
}

func testPlan() launcher.Plan {
	layers := launcher.ResolveLayers([]*launcher.RawLayer{
		{Src: "sky.png"},
		{Src: "hidden.png", Visible: launcher.Bool(false)},
	}, launcher.PathResolver{Base: "/"}, nil)
	return launcher.BuildPlan(launcher.NewOrigin(800, 600), layers)
}

func TestWritePlanText(t *testing.T) {
	var buf bytes.Buffer
	if err := writePlanText(&buf, testPlan()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "origin 800x600 center (400, 300) scale 300\n") {
		t.Errorf("header = %q", out)
	}
	if !strings.Contains(out, "/sky.png") || strings.Contains(out, "hidden.png") {
		t.Errorf("layers = %q", out)
	}

	buf.Reset()
	empty := launcher.BuildPlan(launcher.NewOrigin(800, 600), nil)
	if err := writePlanText(&buf, empty); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no layers") {
		t.Errorf("empty plan = %q", buf.String())
	}
}

func TestWritePlanJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writePlanJSON(&buf, testPlan()); err != nil {
		t.Fatal(err)
	}
	var got planJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Interactive {
		t.Error("plan should not be interactive")
	}
	if got.Origin.Scale != 300 || len(got.Layers) != 1 {
		t.Fatalf("plan = %+v", got)
	}
	l := got.Layers[0]
	if l.Src != "/sky.png" || l.Transform != "translate(-50%, -50%)" || l.Opacity != 1 || l.Blend != "normal" {
		t.Errorf("layer = %+v", l)
	}
}

func TestPlanCommandWithManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"layers":[{"src":"a.png"},{"src":"b.png","visible":false}]}`
	if err := os.WriteFile(filepath.Join(dir, "layers.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "launcher.toml")
	cfg := "manifest = \"layers.json\"\n\n[[layers]]\nsrc = \"inline.png\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "plan", "--config", cfgPath, "--assets", dir, "--size", "400x400", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got planJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got.Layers) != 1 || got.Layers[0].Src != "/a.png" {
		t.Errorf("layers = %+v", got.Layers)
	}
}

func TestPlanCommandFailedManifest(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "launcher.toml")
	cfg := "manifest = \"missing.json\"\n\n[[layers]]\nsrc = \"inline.png\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "plan", "--config", cfgPath, "--assets", dir, "--size", "400x400")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no layers") {
		t.Errorf("output = %q", out)
	}
}
