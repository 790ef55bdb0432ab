package gui

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dbtoolbox/dbtoolbox/internal/config"
)

// Run launches the GUI mode.
func Run(cfg *config.Config) error {
	// Check for headless environment on Linux
	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("GUI mode requires a display. No display detected.\n" +
				"DISPLAY and WAYLAND_DISPLAY are not set.\n" +
				"Use 'dbtoolbox extract' for headless extraction")
		}
	}
	return LaunchGUI(cfg)
}
