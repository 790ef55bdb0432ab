// Package config assembles the startup configuration of the toolbox.
package config

import (
	"os"
	"path/filepath"

	"github.com/dbtoolbox/dbtoolbox/internal/pathutil"
)

// ReportFileName is the tabular report EnergyPlus writes for every
// simulation.
const ReportFileName = "eplustbl.htm"

// DesignBuilderDir returns the DesignBuilder data directory.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\DesignBuilder
//   - elsewhere: ~/AppData/Local/DesignBuilder (DesignBuilder under Wine
//     keeps the Windows layout in the prefix's profile)
func DesignBuilderDir() string {
	localAppData := pathutil.ExpandWindowsVars("%LOCALAPPDATA%")
	if localAppData == "%LOCALAPPDATA%" || localAppData == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "DesignBuilder")
		}
		localAppData = filepath.Join(homeDir, "AppData", "Local")
	}
	return filepath.Join(localAppData, "DesignBuilder")
}

// EnergyPlusDir returns the directory DesignBuilder runs EnergyPlus in. It
// is the default output directory.
func EnergyPlusDir() string {
	return filepath.Join(DesignBuilderDir(), "EnergyPlus")
}

// DefaultReportPath returns the report of the most recent simulation.
func DefaultReportPath() string {
	return filepath.Join(EnergyPlusDir(), ReportFileName)
}
