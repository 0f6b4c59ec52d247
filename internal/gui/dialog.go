package gui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/modshift/modshift/internal/constants"
	"github.com/modshift/modshift/internal/events"
	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/notify"
	"github.com/modshift/modshift/internal/progress"
)

// LoadingDialog is a modal dialog that runs a caller-supplied function
// on a background goroutine while the UI thread renders its progress:
// a main percentage bar, optional secondary/tertiary bars, stats labels
// and a short list of recent operations.
//
// The worker reports through UpdateProgress, which is safe from any
// goroutine; payloads travel over the event bus and are applied to
// widgets only via fyne.Do.
type LoadingDialog struct {
	parent   fyne.Window
	appName  string
	fn       func(*LoadingDialog) error
	bus      *events.EventBus
	dlg      *dialog.CustomDialog
	notifier *notify.Notifier

	// UI components
	filesLabel     *widget.Label
	sizeLabel      *widget.Label
	timeLabel      *widget.Label
	speedLabel     *widget.Label
	mainLabel      *widget.Label
	mainBar        *widget.ProgressBar
	secondBar      *widget.ProgressBar
	thirdBar       *widget.ProgressBar
	currentOpLabel *widget.Label
	opsList        *widget.List

	// Display state. Mutated only on the UI thread.
	percent       int
	completedOps  int
	totalOps      int
	sizeProcessed int64
	totalSize     int64
	recentOps     []string
	origTitle     string

	startTime  time.Time
	tickerStop chan struct{}
	tickerOnce sync.Once
	workerExit chan struct{}
	done       chan struct{}

	outcomeOnce sync.Once
	outcome     workerOutcome
}

// workerOutcome captures how the worker ended. Set exactly once per
// dialog execution, before the finished notification is published.
type workerOutcome struct {
	success bool
	err     error
}

// NewLoadingDialog creates the dialog over parent. fn runs on a
// background goroutine once Exec is called and receives the dialog so
// it can post progress updates.
func NewLoadingDialog(parent fyne.Window, appName string, fn func(*LoadingDialog) error) *LoadingDialog {
	d := &LoadingDialog{
		parent:     parent,
		appName:    appName,
		fn:         fn,
		bus:        events.NewEventBus(constants.EventBusDefaultBuffer),
		tickerStop: make(chan struct{}),
		workerExit: make(chan struct{}),
		done:       make(chan struct{}),
	}

	d.filesLabel = widget.NewLabel("Files: 0 / 0")
	d.sizeLabel = widget.NewLabel("Size: 0 B / 0 B")
	d.timeLabel = widget.NewLabel("Time: 00:00")
	d.speedLabel = widget.NewLabel("Speed: --")

	d.mainLabel = widget.NewLabel("Preparing operation...")
	d.mainBar = widget.NewProgressBar()

	d.secondBar = widget.NewProgressBar()
	d.secondBar.Hide()
	d.thirdBar = widget.NewProgressBar()
	d.thirdBar.Hide()

	d.currentOpLabel = widget.NewLabel("Waiting to start...")
	d.opsList = widget.NewList(
		func() int { return len(d.recentOps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(d.recentOps[i])
		},
	)

	stats := container.NewGridWithColumns(4,
		d.filesLabel, d.sizeLabel, d.timeLabel, d.speedLabel)

	mainGroup := widget.NewCard("Overall Progress", "", container.NewVBox(
		stats,
		d.mainLabel,
		d.mainBar,
		d.secondBar,
		d.thirdBar,
	))

	opsScroll := container.NewScroll(d.opsList)
	opsScroll.SetMinSize(fyne.NewSize(560, 120))
	opsGroup := widget.NewCard("Current Operations", "", container.NewVBox(
		d.currentOpLabel,
		opsScroll,
	))

	content := container.NewVBox(mainGroup, opsGroup)

	d.dlg = dialog.NewCustomWithoutButtons("Operation in Progress", content, parent)
	d.dlg.Resize(fyne.NewSize(600, 420))

	return d
}

// SetNotifier attaches a desktop notifier fired on completion.
func (d *LoadingDialog) SetNotifier(n *notify.Notifier) {
	d.notifier = n
}

// UpdateProgress posts a progress payload to the dialog. Safe to call
// from any goroutine; it never touches widgets directly. Implements
// progress.Sink.
func (d *LoadingDialog) UpdateProgress(u progress.Update) {
	d.bus.PublishProgress(u)
}

// Exec shows the dialog, starts the worker and blocks until the dialog
// has closed. The worker's error (or recovered panic) is returned to
// the caller. Must not be called from the UI thread.
func (d *LoadingDialog) Exec() error {
	ch := d.bus.SubscribeAll()

	d.startTime = time.Now()

	fyne.Do(func() {
		d.origTitle = d.parent.Title()
		d.dlg.Show()
	})

	go d.runTicker()
	go d.dispatch(ch)
	go d.runWorker()

	<-d.done
	d.bus.Close()

	if !d.outcome.success {
		return d.outcome.err
	}
	return nil
}

// runWorker executes fn with start/stop notifications around it. Any
// error or panic is captured; the finished notification is always
// published so the UI reaches a terminal state.
func (d *LoadingDialog) runWorker() {
	d.bus.PublishWorkerStarted()

	err := d.safeCall()

	d.outcomeOnce.Do(func() {
		d.outcome = workerOutcome{success: err == nil, err: err}
	})

	d.bus.PublishWorkerFinished(err)
	close(d.workerExit)
}

func (d *LoadingDialog) safeCall() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panicked: %v", r)
		}
	}()
	return d.fn(d)
}

// dispatch reads bus events in order and marshals them onto the UI
// thread. It exits after the finished notification.
func (d *LoadingDialog) dispatch(ch <-chan events.Event) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if d.handleEvent(ev) {
				return
			}
		case <-d.workerExit:
			// The bus never blocks a publisher, so under extreme load
			// the finished notification could have been dropped. Drain
			// what is queued, then force the terminal state.
			for {
				select {
				case ev, ok := <-ch:
					if ok && d.handleEvent(ev) {
						return
					}
					if !ok {
						fyne.Do(d.onFinish)
						return
					}
				default:
					fyne.Do(d.onFinish)
					return
				}
			}
		}
	}
}

// handleEvent returns true once the worker has finished.
func (d *LoadingDialog) handleEvent(ev events.Event) bool {
	switch e := ev.(type) {
	case *events.WorkerStartedEvent:
		fyne.Do(d.onStart)
	case *events.ProgressEvent:
		u := e.Update
		fyne.Do(func() { d.apply(u) })
	case *events.WorkerFinishedEvent:
		fyne.Do(d.onFinish)
		return true
	}
	return false
}

// runTicker recomputes elapsed time and throughput twice per second
// until the worker finishes.
func (d *LoadingDialog) runTicker() {
	ticker := time.NewTicker(constants.TickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fyne.Do(d.updateElapsed)
		case <-d.tickerStop:
			return
		}
	}
}

func (d *LoadingDialog) stopTicker() {
	d.tickerOnce.Do(func() { close(d.tickerStop) })
}

// updateElapsed refreshes the time and speed labels and the parent
// window title. UI thread only.
func (d *LoadingDialog) updateElapsed() {
	select {
	case <-d.tickerStop:
		// A tick queued before shutdown must not clobber the final state
		return
	default:
	}

	elapsed := time.Since(d.startTime)
	clock := format.Clock(elapsed)

	d.timeLabel.SetText("Time: " + clock)

	if elapsed > 0 && d.sizeProcessed > 0 {
		speed := float64(d.sizeProcessed) / elapsed.Seconds()
		d.speedLabel.SetText("Speed: " + format.Speed(speed))
	}

	d.parent.SetTitle(fmt.Sprintf("%s - Elapsed: %s", d.appName, clock))
}

// onStart runs on the UI thread when the worker begins.
func (d *LoadingDialog) onStart() {
	d.currentOpLabel.SetText("Starting operation...")
	d.mainLabel.SetText("Initializing...")
}

// onFinish runs on the UI thread when the worker ends, successfully or
// not. The dialog closes itself after a short delay.
func (d *LoadingDialog) onFinish() {
	d.stopTicker()

	d.percent = 100
	d.mainBar.SetValue(1.0)
	if d.totalOps > 0 {
		d.filesLabel.SetText(fmt.Sprintf("Files: %d / %d", d.completedOps, d.totalOps))
	}
	if d.totalSize > 0 {
		// The bar was forced to 100%, so the size line reads full as well
		d.sizeLabel.SetText(fmt.Sprintf("Size: %s / %s",
			format.Bytes(d.totalSize), format.Bytes(d.totalSize)))
	}

	elapsed := format.Clock(time.Since(d.startTime))
	if d.outcome.success {
		d.mainLabel.SetText(fmt.Sprintf("Operation completed in %s", elapsed))
		d.currentOpLabel.SetText("All operations completed successfully.")
		if d.notifier != nil {
			d.notifier.MigrationComplete(int64(d.completedOps), d.sizeProcessed, elapsed)
		}
	} else {
		d.mainLabel.SetText(fmt.Sprintf("Operation failed after %s", elapsed))
		d.currentOpLabel.SetText("The operation did not complete.")
		if d.notifier != nil && d.outcome.err != nil {
			d.notifier.MigrationFailed(d.outcome.err.Error())
		}
	}

	d.appendOperation(fmt.Sprintf("Completed %d operations in %s", d.completedOps, elapsed))

	d.parent.SetTitle(d.origTitle)

	time.AfterFunc(constants.CloseDelay, func() {
		fyne.Do(d.dlg.Hide)
		close(d.done)
	})
}

// apply updates the display state from one payload. UI thread only.
// Absent fields leave prior state unchanged.
func (d *LoadingDialog) apply(u progress.Update) {
	u = u.Resolved()

	if u.Value1 != nil && u.Max1 != nil {
		if d.totalSize == 0 && *u.Max1 > 0 {
			d.totalSize = *u.Max1
		}

		// Guard against division by zero; max <= 0 never moves the bar
		if *u.Max1 > 0 {
			p := int(math.Round(float64(*u.Value1) / float64(*u.Max1) * 100))
			if p > 100 {
				p = 100
			}
			if p < 0 {
				p = 0
			}
			if p > d.percent {
				d.percent = p
				d.mainBar.SetValue(float64(p) / 100)
			}

			if *u.Value1 > d.sizeProcessed {
				d.sizeProcessed = *u.Value1
			}
			d.sizeLabel.SetText(fmt.Sprintf("Size: %s / %s",
				format.Bytes(d.sizeProcessed), format.Bytes(*u.Max1)))
		}
	}

	if u.Text1 != nil {
		d.mainLabel.SetText(*u.Text1)
	}

	if u.Show2 != nil {
		setVisible(d.secondBar, *u.Show2)
	}
	if u.Value2 != nil && u.Max2 != nil && *u.Max2 > 0 {
		d.secondBar.SetValue(clampFraction(*u.Value2, *u.Max2))
	}

	if u.Text2 != nil {
		if cur, total, ok := parseFileCount(*u.Text2); ok {
			d.completedOps = cur
			d.totalOps = total
			d.filesLabel.SetText(fmt.Sprintf("Files: %d/%d", cur, total))
		}

		d.currentOpLabel.SetText(*u.Text2)

		if qualifiesForList(*u.Text2, d.recentOps) {
			d.appendOperation(*u.Text2)
		}
	}

	if u.Show3 != nil {
		setVisible(d.thirdBar, *u.Show3)
	}
	if u.Value3 != nil && u.Max3 != nil && *u.Max3 > 0 {
		d.thirdBar.SetValue(clampFraction(*u.Value3, *u.Max3))
	}

	if u.Text3 != nil && qualifiesForList(*u.Text3, d.recentOps) {
		d.appendOperation(*u.Text3)
	}
}

// appendOperation adds a line to the recent-operations list, evicting
// the oldest entry past the cap. UI thread only.
func (d *LoadingDialog) appendOperation(text string) {
	d.recentOps = append(d.recentOps, text)
	if len(d.recentOps) > constants.RecentOperationCap {
		d.recentOps = d.recentOps[len(d.recentOps)-constants.RecentOperationCap:]
	}
	d.opsList.Refresh()
	d.opsList.ScrollToBottom()
}

// Percent returns the currently displayed main-bar percentage.
func (d *LoadingDialog) Percent() int {
	return d.percent
}

// Counts returns the completed/total operation counts parsed from the
// secondary text.
func (d *LoadingDialog) Counts() (completed, total int) {
	return d.completedOps, d.totalOps
}

func setVisible(bar *widget.ProgressBar, visible bool) {
	if visible {
		bar.Show()
	} else {
		bar.Hide()
	}
}

func clampFraction(value, max int64) float64 {
	f := float64(value) / float64(max)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// parseFileCount extracts the counts from text of the form "name (X/Y)".
// Malformed text reports ok=false and the caller falls back to plain display.
func parseFileCount(s string) (current, total int, ok bool) {
	if !strings.HasSuffix(s, ")") {
		return 0, 0, false
	}
	open := strings.LastIndex(s, " (")
	if open < 0 {
		return 0, 0, false
	}

	inner := s[open+2 : len(s)-1]
	curStr, totalStr, found := strings.Cut(inner, "/")
	if !found {
		return 0, 0, false
	}

	current, err := strconv.Atoi(curStr)
	if err != nil || current < 0 {
		return 0, 0, false
	}
	total, err = strconv.Atoi(totalStr)
	if err != nil || total < 0 {
		return 0, 0, false
	}
	return current, total, true
}

// qualifiesForList reports whether text is descriptive enough for the
// recent-operations list and not already present.
func qualifiesForList(text string, recent []string) bool {
	if utf8.RuneCountInString(text) <= constants.MinOperationTextLen {
		return false
	}
	for _, op := range recent {
		if op == text {
			return false
		}
	}
	return true
}
