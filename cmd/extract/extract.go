// Package extract contains the standalone statement extraction command.
package extract

import (
	"fmt"
	"os"

	"steuer-chat/cmd/common"
	"steuer-chat/cmd/root"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Cmd extracts the tax-relevant fields from a wage tax statement and
// prints them as JSON, without starting an interview.
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract tax fields from a wage tax statement",
	Long: `Extract the tax-relevant fields (year, gross income, income tax
paid, employer) from a wage tax statement and print them as JSON.
Both plain-text statements and ELStAM-style XML are supported.`,
	RunE: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("--input file is required")
	}

	data, err := common.LoadExtracted(root.SharedFlags.Input)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode extracted data: %w", err)
	}

	if root.SharedFlags.Output != "" {
		if err := os.WriteFile(root.SharedFlags.Output, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		root.Log.Infof("Extracted data written to %s", root.SharedFlags.Output)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
