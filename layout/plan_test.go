package layout

import (
	"testing"

	"github.com/tsawler/notedeck/classify"
	"github.com/tsawler/notedeck/model"
)

func TestBulletFontSize(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 26},
		{1, 26},
		{2, 26},
		{13, 23}, // 360/13 = 27 - 4
		{14, 21}, // 360/14 = 25 - 4
		{16, 18}, // 360/16 = 22 - 4
		{18, 16},
		{20, 16},
		{100, 16},
	}

	for _, tt := range tests {
		if got := BulletFontSize(tt.lines); got != tt.want {
			t.Errorf("BulletFontSize(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestBulletFontSizeBoundsAndMonotonic(t *testing.T) {
	prev := MaxBulletFontPt
	for n := 0; n <= 500; n++ {
		size := BulletFontSize(n)
		if size < MinBulletFontPt || size > MaxBulletFontPt {
			t.Fatalf("BulletFontSize(%d) = %d outside [%d, %d]", n, size, MinBulletFontPt, MaxBulletFontPt)
		}
		if size > prev {
			t.Fatalf("font size grew from %d to %d at %d lines", prev, size, n)
		}
		prev = size
	}
}

func TestComputeBulletList(t *testing.T) {
	plan := Compute(classify.BulletList, []string{"Point A", "Point B"})

	if plan.Shape != classify.BulletList {
		t.Errorf("Shape = %v, want bullets", plan.Shape)
	}
	if plan.FontSizePt != 26 {
		t.Errorf("FontSizePt = %d, want 26", plan.FontSizePt)
	}
	if plan.Box != BulletBox {
		t.Errorf("Box = %+v, want %+v", plan.Box, BulletBox)
	}
	if !plan.WordWrap {
		t.Error("bullets should wrap")
	}
	if len(plan.Lines) != 2 {
		t.Errorf("Lines = %v", plan.Lines)
	}
}

func TestComputeEmptyBulletList(t *testing.T) {
	plan := Compute(classify.BulletList, nil)

	if len(plan.Lines) != 0 {
		t.Errorf("expected no lines, got %v", plan.Lines)
	}
	if plan.FontSizePt != MaxBulletFontPt {
		t.Errorf("FontSizePt = %d, want ceiling %d", plan.FontSizePt, MaxBulletFontPt)
	}
}

func TestComputeTable(t *testing.T) {
	plan := Compute(classify.Table, []string{"key1: val1", "key2: val2", "stray"})

	if plan.Shape != classify.Table {
		t.Errorf("Shape = %v, want table", plan.Shape)
	}
	if plan.FontSizePt != TableFontPt {
		t.Errorf("FontSizePt = %d, want %d", plan.FontSizePt, TableFontPt)
	}
	if len(plan.Rows) != 2 {
		t.Fatalf("Rows = %v, want 2 rows", plan.Rows)
	}
	if plan.Rows[0] != (classify.Row{Key: "key1", Value: "val1"}) {
		t.Errorf("Rows[0] = %+v", plan.Rows[0])
	}
	if len(plan.Dropped) != 1 || plan.Dropped[0] != "stray" {
		t.Errorf("Dropped = %v", plan.Dropped)
	}
	if plan.Box != TableBox {
		t.Errorf("Box = %+v", plan.Box)
	}
}

func TestComputeCodeBlock(t *testing.T) {
	lines := []string{"def f():", "    return 1;"}
	plan := Compute(classify.CodeBlock, lines)

	if plan.FontSizePt != CodeFontPt {
		t.Errorf("FontSizePt = %d, want %d", plan.FontSizePt, CodeFontPt)
	}
	if plan.WordWrap {
		t.Error("code must not wrap")
	}
	if plan.Typeface != CodeTypeface {
		t.Errorf("Typeface = %q", plan.Typeface)
	}
	if plan.Lines[1] != "    return 1;" {
		t.Errorf("code indentation lost: %q", plan.Lines[1])
	}
}

func TestGeometryFitsStandardSlide(t *testing.T) {
	slide := model.NewRect(0, 0, model.Inches(10), model.Inches(7.5))

	for name, box := range map[string]model.Rect{
		"title":  TitleBox,
		"bullet": BulletBox,
		"table":  TableBox,
		"code":   CodeBox,
		"intro":  IntroTextBox,
		"logo":   LogoBox,
		"icon":   IconBox,
	} {
		if !slide.Contains(box) {
			t.Errorf("%s box %+v does not fit the slide", name, box)
		}
	}
}

func TestBulletBoxHeightInPoints(t *testing.T) {
	if got := BulletBox.Height.Points(); got != 360 {
		t.Errorf("BulletBox height = %vpt, want 360", got)
	}
}
