package document

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestFileLoader_PlainText(t *testing.T) {
	path := writeTempFile(t, "resume.txt", "Ada Lovelace\nada@example.com\nGo, SQL")

	loader := NewFileLoader()
	text, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Ada Lovelace\nada@example.com\nGo, SQL" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestFileLoader_UppercaseExtension(t *testing.T) {
	path := writeTempFile(t, "resume.TXT", "plain content")

	loader := NewFileLoader()
	text, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "plain content" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestFileLoader_Errors(t *testing.T) {
	loader := NewFileLoader()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "empty path",
			path: func(t *testing.T) string { return "" },
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.pdf") },
		},
		{
			name: "unsupported extension",
			path: func(t *testing.T) string { return writeTempFile(t, "resume.xlsx", "cells") },
		},
		{
			name: "empty document",
			path: func(t *testing.T) string { return writeTempFile(t, "empty.txt", "   \n\t") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(tt.path(t)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
