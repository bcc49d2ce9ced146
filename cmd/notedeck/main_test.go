package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tsawler/notedeck/pptx"
	"github.com/tsawler/notedeck/pptx/pptxtest"
)

const lecture = "Slide 1: Welcome\nSlide 2: Overview\nPoint A\nPoint B\nSlide 3: Data\nkey1: val1\nkey2: val2"

// run executes the CLI with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NOTEDECK_ADDR", "")
	t.Setenv("NOTEDECK_OUTPUT_DIR", "")
	t.Setenv("NOTEDECK_S3_BUCKET", "")

	root := newRootCmd(&app{logger: zap.NewNop()})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	args = append(args, "--config", filepath.Join(t.TempDir(), "absent.yml"))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeNotes(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lecture.txt")
	if err := os.WriteFile(path, []byte(lecture), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspect(t *testing.T) {
	tpl := pptxtest.WriteFile(t, pptxtest.Options{Slides: []string{"Welcome", "Agenda"}})

	out, err := run(t, "inspect", tpl)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"slides:  2", "Agenda", "layouts: 2", "Title and Content", "10.00in x 7.50in"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestInspect_BadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pptx")
	if err := os.WriteFile(path, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "inspect", path); err == nil {
		t.Error("Expected error for invalid template")
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	tpl := pptxtest.WriteFile(t, pptxtest.Options{Slides: []string{"Old"}})
	outPath := filepath.Join(dir, "deck.pptx")

	out, err := run(t, "generate", writeNotes(t, dir), "-t", tpl, "-o", outPath, "--seed", "3", "--brand", "Systems")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "wrote "+outPath) {
		t.Errorf("Unexpected output: %s", out)
	}

	pkg, err := pptx.Open(outPath)
	if err != nil {
		t.Fatalf("Generated deck does not open: %v", err)
	}
	if pkg.SlideCount() != 3 {
		t.Errorf("Expected 3 slides, got %d", pkg.SlideCount())
	}
}

func TestGenerate_ConfiguredOutputDir(t *testing.T) {
	dir := t.TempDir()
	tpl := pptxtest.WriteFile(t, pptxtest.Options{Slides: []string{"Old"}})
	outDir := filepath.Join(dir, "out")

	t.Setenv("NOTEDECK_OUTPUT_DIR", outDir)
	root := newRootCmd(&app{logger: zap.NewNop()})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"generate", writeNotes(t, dir), "-t", tpl, "--key", "lecture.pptx",
		"--config", filepath.Join(dir, "absent.yml")})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "lecture.pptx")); err != nil {
		t.Errorf("Expected deck in output dir: %v", err)
	}
}

func TestGenerate_RequiresTemplate(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "generate", writeNotes(t, dir)); err == nil {
		t.Error("Expected error without --template")
	}
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	tpl := pptxtest.WriteFile(t, pptxtest.Options{Slides: []string{"Old"}})
	pngDir := filepath.Join(dir, "png")

	out, err := run(t, "preview", writeNotes(t, dir), "-t", tpl, "--dir", pngDir, "--width", "80")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	for _, name := range []string{"slide-01.png", "slide-02.png", "slide-03.png"} {
		if _, err := os.Stat(filepath.Join(pngDir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("Expected output to list %s", name)
		}
	}
}
