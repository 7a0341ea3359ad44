package pdf

import (
	"path/filepath"
	"testing"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		trim bool
		want string
	}{
		{"short.pdf", true, "modified_short.pdf"},
		{"short.pdf", false, "modified_short.pdf"},
		{"abcdefghijk.pdf", true, "modified_abcdefghijk.pdf"},
		{"abcdefghijkl.pdf", true, "modified_a.pdf"},
		{"report_20230101.pdf", true, "modified_repo.pdf"},
		{"report_20230101.pdf", false, "modified_report_20230101.pdf"},
		{"scan_2024-01-01_final.pdf", true, "modified_scan_2024-.pdf"},
		{"보고서_2023년_01월_01일.pdf", true, "modified_보고서_20.pdf"},
		{"longfilenamewithoutext", true, "modified_longfilenam"},
		{"archive.tar.gz", false, "modified_archive.tar.gz"},
		{".pdf", true, "modified_.pdf"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.name, tt.trim); got != tt.want {
			t.Errorf("OutputName(%q, %v) = %q, want %q", tt.name, tt.trim, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	dir := filepath.Join("home", "user", "docs")
	got := OutputPath(filepath.Join(dir, "invoice_000000000001.pdf"), true)
	want := filepath.Join(dir, "modified_invoice_0.pdf")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	if got := OutputPath("plain.pdf", false); got != "modified_plain.pdf" {
		t.Errorf("OutputPath without directory = %q", got)
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, base, ext string
	}{
		{"a.pdf", "a", ".pdf"},
		{"a.b.pdf", "a.b", ".pdf"},
		{"noext", "noext", ""},
		{".pdf", ".pdf", ""},
		{"..", "..", ""},
	}
	for _, tt := range tests {
		base, ext := SplitExt(tt.in)
		if base != tt.base || ext != tt.ext {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.in, base, ext, tt.base, tt.ext)
		}
	}
}
