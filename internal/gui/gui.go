package gui

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/modshift/modshift/internal/config"
	"github.com/modshift/modshift/internal/constants"
	"github.com/modshift/modshift/internal/events"
	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/logging"
	"github.com/modshift/modshift/internal/migrate"
	"github.com/modshift/modshift/internal/notify"
	"github.com/modshift/modshift/internal/progress"
	"github.com/modshift/modshift/internal/update"
	"github.com/modshift/modshift/internal/version"
)

// guiLogger is the package-level logger for GUI mode
var guiLogger *logging.Logger

// LaunchGUI builds the main window and runs the Fyne event loop until
// the user quits.
func LaunchGUI(configFile string) error {
	guiLogger = logging.NewLogger("gui")

	// GUI mode keeps the console quiet unless MODSHIFT_DEBUG is set
	if os.Getenv("MODSHIFT_DEBUG") != "" {
		logging.SetGlobalLevel(zerolog.DebugLevel)
		guiLogger.Info().Msg("Debug logging enabled via MODSHIFT_DEBUG")
	} else {
		logging.SetGlobalLevel(zerolog.WarnLevel)
	}

	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("GUI mode requires a display. No display detected.\n" +
				"DISPLAY and WAYLAND_DISPLAY are not set.\n" +
				"Use 'modshift migrate' for CLI mode")
		}
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	myApp := app.NewWithID(constants.AppID)
	mainWindow := myApp.NewWindow(constants.AppName)
	mainWindow.SetMaster()

	buildMainWindow(mainWindow, cfg, configFile)

	go checkForUpdates(mainWindow)

	mainWindow.Resize(fyne.NewSize(640, 360))
	mainWindow.ShowAndRun()
	return nil
}

// loadConfig loads the given file, or the default location, falling
// back to defaults when nothing is on disk.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		guiLogger.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.Default()
	}
	return cfg, nil
}

// buildMainWindow assembles the instance pickers and the migrate action.
func buildMainWindow(w fyne.Window, cfg *config.Config, configFile string) {
	sourceEntry := widget.NewEntry()
	sourceEntry.SetPlaceHolder("Source instance directory")
	sourceEntry.SetText(cfg.LastSource)

	destEntry := widget.NewEntry()
	destEntry.SetPlaceHolder("Destination instance directory")
	destEntry.SetText(cfg.LastDestination)

	statusLabel := widget.NewLabel("Select a source and destination instance.")

	notifyCheck := widget.NewCheck("Desktop notification when done", func(checked bool) {
		cfg.Notifications = checked
	})
	notifyCheck.SetChecked(cfg.Notifications)

	sourceBrowse := widget.NewButton("Browse...", func() {
		pickFolder(w, sourceEntry)
	})
	destBrowse := widget.NewButton("Browse...", func() {
		pickFolder(w, destEntry)
	})

	migrateBtn := widget.NewButton("Start Migration", nil)
	migrateBtn.Importance = widget.HighImportance
	migrateBtn.OnTapped = func() {
		src := sourceEntry.Text
		dst := destEntry.Text
		if src == "" || dst == "" {
			dialog.ShowError(fmt.Errorf("both source and destination are required"), w)
			return
		}

		cfg.LastSource = src
		cfg.LastDestination = dst
		if err := cfg.Save(configFile); err != nil {
			guiLogger.Warn().Err(err).Msg("Failed to save config")
		}

		migrateBtn.Disable()
		statusLabel.SetText("Migration in progress...")

		go runMigration(w, src, dst, cfg.Notifications, func(summary *migrate.Summary, err error) {
			fyne.Do(func() {
				migrateBtn.Enable()
				if err != nil {
					statusLabel.SetText("Migration failed: " + err.Error())
					dialog.ShowError(err, w)
					return
				}
				statusLabel.SetText(fmt.Sprintf("Migrated %d %s (%s) in %s.",
					summary.Mods, format.Pluralize("mod", summary.Mods),
					format.Bytes(summary.Bytes), format.Clock(summary.Elapsed)))
			})
		})
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Migrate a mod collection", fyne.TextAlignLeading,
			fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, sourceBrowse, sourceEntry),
		container.NewBorder(nil, nil, nil, destBrowse, destEntry),
		notifyCheck,
		migrateBtn,
		widget.NewSeparator(),
		statusLabel,
	)

	w.SetContent(container.NewPadded(form))
}

// runMigration drives a Migrate call through the loading dialog. Runs
// off the UI thread; done is invoked with the result.
func runMigration(w fyne.Window, src, dst string, notifications bool, done func(*migrate.Summary, error)) {
	source, err := migrate.OpenInstance(src)
	if err != nil {
		done(nil, err)
		return
	}
	dest := &migrate.Instance{Name: "destination", Root: dst}

	engine := migrate.NewEngine(guiLogger)

	var summary *migrate.Summary
	dlg := NewLoadingDialog(w, constants.AppName, func(ld *LoadingDialog) error {
		var runErr error
		summary, runErr = engine.Migrate(context.Background(), source, dest, ld)
		return runErr
	})
	dlg.SetNotifier(notify.NewNotifier(notifications, guiLogger))

	// Surface engine log events in the dialog's operations list
	logCh := engine.Events().Subscribe(events.EventLog)
	go func() {
		for ev := range logCh {
			if le, ok := ev.(*events.LogEvent); ok {
				dlg.UpdateProgress(progress.Update{Text3: progress.Ptr(le.Message)})
			}
		}
	}()

	err = dlg.Exec()
	engine.Events().Close()
	done(summary, err)
}

// pickFolder opens a folder picker and writes the chosen path into entry.
func pickFolder(w fyne.Window, entry *widget.Entry) {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, w)

	if entry.Text != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(entry.Text)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// checkForUpdates queries the release feed once at startup and shows a
// notice when a newer version exists. Failures are logged and ignored.
func checkForUpdates(w fyne.Window) {
	release, available, err := update.Check(context.Background(), version.Version)
	if err != nil {
		guiLogger.Debug().Err(err).Msg("Update check failed")
		return
	}
	if !available {
		return
	}

	fyne.Do(func() {
		dialog.ShowInformation("Update Available",
			fmt.Sprintf("%s %s is available.\nYou are running %s.\n\n%s",
				constants.AppName, release.Version, version.Version, release.URL), w)
	})
}
