package model

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#FF0000", RGB{255, 0, 0}, false},
		{"00ff7f", RGB{0, 255, 127}, false},
		{" #0a0B0c ", RGB{10, 11, 12}, false},
		{"#FFF", RGB{}, true},
		{"GGGGGG", RGB{}, true},
		{"", RGB{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{1, 171, 255}).Hex(); got != "01ABFF" {
		t.Errorf("Hex() = %q, want 01ABFF", got)
	}
	if got := (RGB{1, 171, 255}).String(); got != "#01ABFF" {
		t.Errorf("String() = %q", got)
	}
}

func TestWithin(t *testing.T) {
	if !(RGB{40, 100, 200}).Within(40, 200) {
		t.Error("expected inclusive bounds")
	}
	if (RGB{39, 100, 200}).Within(40, 200) {
		t.Error("expected 39 to be out of bounds")
	}
}
