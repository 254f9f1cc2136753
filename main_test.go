package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/pdfml/markup"
	canvasrenderer "github.com/ByLCY/pdfml/renderer/canvas"
)

func TestRunTemplateWithDebug(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "invoice.xml")
	src := `<pdf unit="pt"><page>{{range .lines}}<text>{{.}}</text>{{end}}</page></pdf>`
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config{
		input:    in,
		output:   filepath.Join(dir, "out", "invoice.pdf"),
		format:   markup.FormatXML,
		template: true,
		data:     map[string]any{"lines": []any{"one", "two"}},
		debug:    filepath.Join(dir, "debug", "ops.json"),
	}
	if err := run(cfg, canvasrenderer.NewRenderer("")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	pdf, err := os.ReadFile(cfg.output)
	if err != nil || !strings.HasPrefix(string(pdf), "%PDF") {
		t.Fatalf("expected PDF output, err=%v", err)
	}
	raw, err := os.ReadFile(cfg.debug)
	if err != nil {
		t.Fatalf("debug JSON missing: %v", err)
	}
	var dump struct {
		Pages int `json:"pages"`
		Ops   []struct {
			Name string `json:"op"`
			Text string `json:"text"`
		} `json:"ops"`
	}
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("invalid debug JSON: %v", err)
	}
	if dump.Pages != 1 {
		t.Fatalf("expected 1 page in dump, got %d", dump.Pages)
	}
	var words []string
	for _, op := range dump.Ops {
		if op.Name == "textOut" {
			words = append(words, op.Text)
		}
	}
	if strings.Join(words, ",") != "one,two" {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestRunDSL(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdfml")
	if err := os.WriteFile(in, []byte(`pdf unit=mm margin=15 { page { text { "hi" }; rect height=10 } }`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config{input: in, output: filepath.Join(dir, "doc.pdf"), format: markup.FormatDSL}
	if err := run(cfg, canvasrenderer.NewRenderer("")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(config{input: "missing.xml"}, canvasrenderer.NewRenderer("")); err == nil {
		t.Fatalf("expected error for missing input")
	}
	if err := run(config{}, nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}
