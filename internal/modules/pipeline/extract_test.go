package pipeline

import (
	"strings"
	"testing"
)

func TestIsAllowedFileType(t *testing.T) {
	cases := []struct {
		ext  string
		want bool
	}{
		{"txt", true},
		{".txt", true},
		{"MD", true},
		{"mp3", true},
		{"wav", true},
		{"mp4", true},
		{"pdf", false},
		{"docx", false},
		{"exe", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsAllowedFileType(tc.ext); got != tc.want {
			t.Errorf("IsAllowedFileType(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText([]byte("hello transcript"), "txt")
	if err != nil {
		t.Fatalf("ExtractText(txt) error: %v", err)
	}
	if text != "hello transcript" {
		t.Fatalf("unexpected text: %q", text)
	}

	audio, err := ExtractText([]byte{0x01, 0x02}, "mp3")
	if err != nil {
		t.Fatalf("ExtractText(mp3) error: %v", err)
	}
	if !strings.Contains(audio, "Interviewer:") {
		t.Fatal("expected canned transcript for audio")
	}

	if _, err := ExtractText(nil, "pdf"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestComputeFileHash(t *testing.T) {
	a := ComputeFileHash([]byte("same content"))
	b := ComputeFileHash([]byte("same content"))
	c := ComputeFileHash([]byte("other content"))

	if a != b {
		t.Fatal("hash not deterministic")
	}
	if a == c {
		t.Fatal("distinct content should hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex length 64, got %d", len(a))
	}
}
