package utils

import (
	"encoding/json"
	"os"
)

// ConvertToJSON serializes the provided value as indented JSON.
func ConvertToJSON(data any) (string, error) {
	j, err := json.MarshalIndent(data, "", strIndent)
	if err != nil {
		return "", err
	}
	return string(j), nil
}

const strIndent = "  "

// PrintAsJSON prints the provided value as indented JSON to stdout.
func PrintAsJSON(data any) error {
	j, err := ConvertToJSON(data)
	if err != nil {
		return err
	}
	PrintMessage(j)
	return nil
}

// WriteToFileAsJSON converts the provided value to JSON and writes it
// to the specified file.
func WriteToFileAsJSON(filePath string, data any, fileMode os.FileMode) error {
	j, err := ConvertToJSON(data)
	if err != nil {
		return err
	}
	return WriteTextToFile(filePath, j+"\n", fileMode)
}
