package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultYAMLIndent is the indent used for YAML output.
const DefaultYAMLIndent = 2

// ConvertToYAML serializes the provided value as a YAML document.
func ConvertToYAML(data any) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(DefaultYAMLIndent)
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintAsYAML prints the provided value as a YAML document to stdout.
func PrintAsYAML(data any) error {
	y, err := ConvertToYAML(data)
	if err != nil {
		return err
	}
	PrintMessage(y)
	return nil
}

// WriteToFileAsYAML converts the provided value to YAML and writes it
// to the specified file.
func WriteToFileAsYAML(filePath string, data any, fileMode os.FileMode) error {
	y, err := ConvertToYAML(data)
	if err != nil {
		return err
	}
	return WriteTextToFile(filePath, y, fileMode)
}

// WriteTextToFile writes text to a file, creating parent directories as
// needed.
func WriteTextToFile(filePath string, text string, fileMode os.FileMode) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, []byte(text), fileMode)
}

// PrintMessage prints a message to stdout.
func PrintMessage(message string) {
	fmt.Println(message)
}
