package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	cache := filepath.Join(dir, "page.html")
	markup := `<div data-component-type="s-search-result"><h2><span>Crucial</span></h2><span class="a-offscreen">₹1,549</span></div>`
	if err := os.WriteFile(cache, []byte(markup), 0o644); err != nil {
		t.Fatalf("write cache: %v", err)
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	raw := fmt.Sprintf(`
source:
  url: http://127.0.0.1:1/unreachable
paths:
  cache: %s
  csv: %s
  html: %s
logging:
  level: error
`, cache, filepath.Join(dir, "products.csv"), filepath.Join(dir, "products.html"))
	if err := os.WriteFile(cfgPath, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dir
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"LISTING_DASHBOARD_CONFIG",
		"LISTING_DASHBOARD_URL",
		"LISTING_DASHBOARD_CACHE",
		"LISTING_DASHBOARD_LOG_LEVEL",
		"LISTING_DASHBOARD_METRICS",
	} {
		t.Setenv(key, "")
	}
}

func TestRunCommandWithSummary(t *testing.T) {
	clearEnv(t)
	cfgPath, dir := writeConfig(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--summary"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Crucial") {
		t.Fatalf("summary missing record:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "products.html")); err != nil {
		t.Fatalf("dashboard not written: %v", err)
	}

	render := newRootCmd()
	render.SetArgs([]string{"render", "--config", cfgPath})
	if err := render.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestRenderCommandWithoutCSV(t *testing.T) {
	clearEnv(t)
	cfgPath, dir := writeConfig(t)
	_ = os.Remove(filepath.Join(dir, "products.csv"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"render", "--config", cfgPath})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected render to fail without a csv file")
	}
}
