package shader

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a whole shader source file.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %q: %w", path, err)
	}
	return string(bytes.TrimPrefix(b, utf8BOM)), nil
}

// ReadSourceFS reads a whole shader source file from fsys.
func ReadSourceFS(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("read shader %q: %w", name, err)
	}
	return string(bytes.TrimPrefix(b, utf8BOM)), nil
}
