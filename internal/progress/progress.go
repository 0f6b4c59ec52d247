// Package progress defines the progress payload shared by the loading
// dialog and the console front end, plus simple single-bar reporters
// for CLI operations.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Update is a structured progress payload for up to three indicators.
// All fields are optional; a nil field leaves the prior display state
// unchanged. Value/max pairs are only applied when both are present.
type Update struct {
	// Primary indicator (overall progress)
	Text1  *string
	Value1 *int64
	Max1   *int64

	// Secondary indicator; Show2 toggles its visibility
	Show2  *bool
	Text2  *string
	Value2 *int64
	Max2   *int64

	// Tertiary indicator; Show3 toggles its visibility
	Show3  *bool
	Text3  *string
	Value3 *int64
	Max3   *int64

	// Legacy single-bar fields. They map onto the primary triple when
	// the corresponding primary field is absent.
	Text  *string
	Value *int64
	Max   *int64
}

// Resolved returns a copy of the update with the legacy single-bar
// fields folded into the primary triple. Explicit primary fields win.
func (u Update) Resolved() Update {
	if u.Text1 == nil {
		u.Text1 = u.Text
	}
	if u.Value1 == nil {
		u.Value1 = u.Value
	}
	if u.Max1 == nil {
		u.Max1 = u.Max
	}
	u.Text, u.Value, u.Max = nil, nil, nil
	return u
}

// Ptr returns a pointer to v, for building Update literals.
func Ptr[T any](v T) *T {
	return &v
}

// Sink receives progress updates. The loading dialog implements Sink
// for GUI runs; ConsoleUI implements it for headless runs. UpdateProgress
// must be safe to call from any goroutine.
type Sink interface {
	UpdateProgress(u Update)
}

// Reporter is the interface for single-bar progress reporting in CLI mode.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
	Error(err error)
	SetDescription(desc string)
}

// CLIProgress implements single-bar progress reporting using progress bars.
type CLIProgress struct {
	bar *progressbar.ProgressBar
}

// NewCLIProgress creates a new CLI progress reporter.
func NewCLIProgress() *CLIProgress {
	return &CLIProgress{}
}

// Start initializes the progress bar with total size and description.
func (p *CLIProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update updates the progress bar to the current position.
func (p *CLIProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

// Finish completes the progress bar.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Error displays an error message.
func (p *CLIProgress) Error(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// SetDescription updates the progress bar description.
func (p *CLIProgress) SetDescription(desc string) {
	if p.bar != nil {
		p.bar.Describe(desc)
	}
}

// NoOpSink is a Sink that discards every update (for silent runs and tests).
type NoOpSink struct{}

// UpdateProgress does nothing.
func (NoOpSink) UpdateProgress(u Update) {}
