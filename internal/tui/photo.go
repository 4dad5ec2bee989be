package tui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNotAnImage = errors.New("file is not an image")

// LoadPhoto reads an image file into a data URI.
func LoadPhoto(path string) (string, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
