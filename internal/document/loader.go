package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Loader extracts concatenated text content from a resume document.
type Loader interface {
	Load(path string) (string, error)
}

// FileLoader loads text from local PDF/DOCX/TXT files. PDF and word formats
// go through docconv, which concatenates pages in page order.
type FileLoader struct{}

// NewFileLoader creates a new file loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load extracts text from the document at path.
// Parameters:
//   - path: local file path of the document.
//
// Returns:
//   - string: extracted text, never empty on success.
//   - error: non-nil if the file is missing, unreadable, unsupported, or
//     yields no text.
func (l *FileLoader) Load(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("document path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("document not accessible: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var text string
	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document yielded no text: %s", path)
	}
	return text, nil
}
