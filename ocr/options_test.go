package ocr

import (
	"reflect"
	"testing"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if got := o.language(); got != "eng" {
		t.Errorf("language() = %q, want eng", got)
	}
	if got := o.pageSegMode(); got != PSMAuto {
		t.Errorf("pageSegMode() = %d, want %d", got, PSMAuto)
	}

	o = Options{Languages: []string{"eng", "fra"}, PageSegMode: PSMSparseText}
	if got := o.language(); got != "eng+fra" {
		t.Errorf("language() = %q, want eng+fra", got)
	}
	if got := o.pageSegMode(); got != PSMSparseText {
		t.Errorf("pageSegMode() = %d, want %d", got, PSMSparseText)
	}
}

func TestLines(t *testing.T) {
	got := Lines("  Slide 1: Intro \r\n\n Hello\n   \n")
	want := []string{"Slide 1: Intro", "Hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if got := Lines(""); got != nil {
		t.Errorf("Lines(\"\") = %q, want nil", got)
	}
}
