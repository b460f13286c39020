package gpu

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// LoadShader reads a shader source file, terminating every line with "\n"
func LoadShader(fsys fs.FS, filename string) (string, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return "", fmt.Errorf("could not open shader file: %w", err)
	}
	defer f.Close()

	var code strings.Builder
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			code.WriteString(line)
			code.WriteByte('\n')
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("could not read shader file %s: %w", filename, err)
		}
	}
	return code.String(), nil
}
