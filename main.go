// =============================================================================
// FBX to DAE Automation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the fbx2dae CLI application. It hands
// control to the Cobra commands in the cmd package.
//
// USAGE:
//   fbx2dae convert    - Convert all FBX files in the input directory
//   fbx2dae normalize  - Repair the scene graph of existing DAE files
//   fbx2dae watch      - Keep converting new files in the input directory
//   fbx2dae validate   - Check the configuration without converting
//   fbx2dae version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion pipeline, DAE repair and supporting modules
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fbx-to-dae-automation/cmd"
)

func main() {
	cmd.Execute()
}
