package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func assertLinesFit(t *testing.T, lines []string, maxWidth int) {
	for i, line := range lines {
		width := utf8.RuneCountInString(line)
		if width > maxWidth && strings.Contains(line, " ") {
			t.Errorf("Line %v is %v characters wide, limit is %v: %q", i, width, maxWidth, line)
		}
	}
}

func TestWrapByWidthAddress(t *testing.T) {
	text := "Address: 12 Main St, Springfield, USA"
	lines := WrapByWidth(text, 42)

	assertLinesFit(t, lines, 42)
	if joined := strings.Join(lines, " "); joined != text {
		t.Errorf("Joined lines don't reproduce the text: %q", joined)
	}
	if len(lines) != 1 {
		t.Errorf("Expected 1 line, got %v: %q", len(lines), lines)
	}
}

func TestWrapByWidth(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth int
		want     []string
	}{
		{"aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"aaa bbb ccc", 6, []string{"aaa", "bbb", "ccc"}},
		{"aaa bbb ccc", 11, []string{"aaa bbb ccc"}},
		{"a verylongword b", 5, []string{"a", "verylongword", "b"}},
		{"verylongword", 4, []string{"verylongword"}},
		{"", 10, []string{""}},
		{"two  spaces", 20, []string{"two  spaces"}},
		{"Address: Plot 7, Ring Road, Near Water Tank, Nellore District", 42,
			[]string{"Address: Plot 7, Ring Road, Near Water", "Tank, Nellore District"}},
	}

	for _, tt := range tests {
		got := WrapByWidth(tt.text, tt.maxWidth)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("WrapByWidth(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
		}
		if joined := strings.Join(got, " "); joined != tt.text {
			t.Errorf("WrapByWidth(%q, %d) lines rejoin to %q", tt.text, tt.maxWidth, joined)
		}
	}
}

func TestWrapByWidthBreaksOnlyWhenNextWordOverflows(t *testing.T) {
	text := strings.Repeat("abcd ", 40) + "end"
	lines := WrapByWidth(text, 42)
	assertLinesFit(t, lines, 42)

	for i := 0; i < len(lines)-1; i++ {
		next := strings.SplitN(lines[i+1], " ", 2)[0]
		if utf8.RuneCountInString(lines[i])+1+utf8.RuneCountInString(next) <= 42 {
			t.Errorf("Line %v broke early, %q would have fit", i, next)
		}
	}
}

func TestFormatRow(t *testing.T) {
	got := FormatRow("Order Id", "ORD-001")
	want := "Order Id" + strings.Repeat(" ", 12) + strings.Repeat(" ", 15) + "ORD-001"

	if got != want {
		t.Errorf("FormatRow = %q, want %q", got, want)
	}
	if len(got) != TotalWidth {
		t.Errorf("Row is %v characters wide, want %v", len(got), TotalWidth)
	}
}

func TestFormatRowDoesNotTruncate(t *testing.T) {
	tests := []struct {
		label, value string
		wantWidth    int
	}{
		{"Sand Supply Point Name", "Narayananellore MSP", TotalWidth},
		{"Sand Supply Point Name", "Narayananellore MSP Extra", 22 + 25},
		{"Address", strings.Repeat("x", 30), 20 + 30},
		{"Trip No", "", TotalWidth},
	}

	for _, tt := range tests {
		got := FormatRow(tt.label, tt.value)
		if utf8.RuneCountInString(got) != tt.wantWidth {
			t.Errorf("FormatRow(%q, %q) is %v wide, want %v", tt.label, tt.value, utf8.RuneCountInString(got), tt.wantWidth)
		}
		if !strings.HasPrefix(got, tt.label) || !strings.HasSuffix(got, tt.value) {
			t.Errorf("FormatRow(%q, %q) = %q lost content", tt.label, tt.value, got)
		}
	}
}

func TestSeparator(t *testing.T) {
	if s := Separator(); s != strings.Repeat("-", 50) {
		t.Errorf("Separator = %q", s)
	}
}
