// =============================================================================
// FBX to DAE Automation - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads the configuration
// and runs the pre-flight checks without converting anything. Missing
// input and output directories are created, as they would be by 'convert'.
//
// COMMAND USAGE:
//   fbx2dae validate
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without converting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := preparedConfig()
		if err != nil {
			return err
		}

		fmt.Println("Configuration is valid")
		fmt.Printf("  Converter:  %s\n", cfg.ConverterPath)
		fmt.Printf("  Input Dir:  %s (*%s)\n", cfg.InputDir, cfg.InputExtension)
		fmt.Printf("  Output Dir: %s (*.%s)\n", cfg.OutputDir, cfg.OutputExtension)
		if cfg.ConverterTimeout > 0 {
			fmt.Printf("  Timeout:    %s\n", cfg.ConverterTimeout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
