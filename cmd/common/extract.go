// Package common holds helpers shared by multiple commands.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"steuer-chat/internal/models"
	"steuer-chat/internal/payslip"
)

// LoadExtracted reads a wage tax statement file and extracts its fields.
// XML files go through the XPath extractor, everything else is treated as
// raw statement text.
func LoadExtracted(path string) (models.ExtractedData, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		f, err := os.Open(path)
		if err != nil {
			return models.ExtractedData{}, fmt.Errorf("failed to open statement file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		return payslip.ParseXML(f)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return models.ExtractedData{}, fmt.Errorf("failed to read statement file: %w", err)
	}
	return payslip.ParseText(string(text))
}
