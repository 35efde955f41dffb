package utils

import (
	"bytes"
	"testing"
)

// Minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDetectImageFormat(t *testing.T) {
	format, err := DetectImageFormat(pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
}

func TestDetectImageFormatRejectsNonImage(t *testing.T) {
	if _, err := DetectImageFormat([]byte("{\"not\": \"an image\"}")); err == nil {
		t.Fatal("expected error for non-image bytes")
	}
}

func TestEncodeDataURIDeterministic(t *testing.T) {
	first := EncodeDataURI("png", pngBytes)
	second := EncodeDataURI("png", pngBytes)
	if first != second {
		t.Fatal("same input produced different encodings")
	}
	if want := "data:image/png;base64,"; len(first) <= len(want) || first[:len(want)] != want {
		t.Errorf("encoded URI has wrong prefix: %q", first)
	}
}

func TestParseDataURIRoundTrip(t *testing.T) {
	uri := EncodeDataURI("png", pngBytes)
	format, data, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Error("decoded bytes differ from input")
	}
}

func TestParseDataURIRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/leaf.png",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png,raw-not-base64",
	}
	for _, uri := range cases {
		if _, _, err := ParseDataURI(uri); err == nil {
			t.Errorf("ParseDataURI(%q): expected error", uri)
		}
	}
}
