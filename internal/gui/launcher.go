// Package gui provides the graphical user interface for modshift.
package gui

// Run launches the GUI mode. LaunchGUI verifies a display is available
// before opening any window.
func Run(args []string) error {
	// Parse optional config file from args
	configFile := ""
	for i, arg := range args {
		if (arg == "--config" || arg == "-c") && i+1 < len(args) {
			configFile = args[i+1]
			break
		}
	}

	return LaunchGUI(configFile)
}
