package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// ConsoleUI renders the loading dialog's three indicators as stacked
// mpb progress bars for headless runs. It implements Sink, so the
// migration engine feeds it the same payloads the GUI dialog receives.
type ConsoleUI struct {
	progress   *mpb.Progress
	isTerminal bool

	mu    sync.Mutex
	slots [3]*consoleSlot
}

// consoleSlot tracks one indicator's bar and the last label text shown
// next to it. The label is read by mpb's render goroutine, so it is
// stored atomically rather than under the ConsoleUI mutex.
type consoleSlot struct {
	bar   *mpb.Bar
	label atomic.Value // string
	total int64
}

// NewConsoleUI creates a console progress UI. On non-TTY output the
// bars are disabled and updates degrade to plain text lines.
func NewConsoleUI() *ConsoleUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		// Enable ANSI escape sequences on Windows for proper progress bar rendering
		enableWindowsANSI(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(80),
		)
	} else {
		// Non-TTY: disable progress bars, just use text output
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &ConsoleUI{
		progress:   p,
		isTerminal: isTerminal,
	}
}

// UpdateProgress applies a payload to the console bars. Safe for
// concurrent use; absent fields leave prior state unchanged.
func (c *ConsoleUI) UpdateProgress(u Update) {
	u = u.Resolved()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.applySlot(0, u.Text1, u.Value1, u.Max1)
	c.applySlot(1, u.Text2, u.Value2, u.Max2)
	c.applySlot(2, u.Text3, u.Value3, u.Max3)
}

// applySlot updates one indicator. Caller holds c.mu.
func (c *ConsoleUI) applySlot(idx int, text *string, value, max *int64) {
	slot := c.slots[idx]

	if text != nil {
		if slot == nil {
			slot = c.newSlot(idx)
		}
		if prev, _ := slot.label.Load().(string); prev != *text {
			slot.label.Store(*text)
			if !c.isTerminal {
				fmt.Fprintf(os.Stderr, "%s\n", *text)
			}
		}
	}

	if value == nil || max == nil || *max <= 0 {
		return
	}
	if slot == nil {
		slot = c.newSlot(idx)
	}
	if slot.bar == nil {
		slot.total = *max
		slot.bar = c.newBar(slot)
	}
	if *max != slot.total {
		slot.total = *max
		if slot.bar != nil {
			slot.bar.SetTotal(*max, false)
		}
	}
	if slot.bar != nil {
		slot.bar.SetCurrent(*value)
	}
}

func (c *ConsoleUI) newSlot(idx int) *consoleSlot {
	slot := &consoleSlot{}
	c.slots[idx] = slot
	return slot
}

func (c *ConsoleUI) newBar(slot *consoleSlot) *mpb.Bar {
	if !c.isTerminal {
		return nil
	}
	return c.progress.New(slot.total,
		mpb.BarStyle().
			Lbound("[").
			Filler("█").
			Tip("█").
			Padding("░").
			Rbound("]"),
		mpb.PrependDecorators(
			decor.Any(func(s decor.Statistics) string {
				label, _ := slot.label.Load().(string)
				return label
			}, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace),
			decor.Name("  "),
			decor.Percentage(decor.WCSyncSpace),
		),
	)
}

// Finish completes all bars and waits for the final render.
func (c *ConsoleUI) Finish() {
	c.mu.Lock()
	for _, slot := range c.slots {
		if slot != nil && slot.bar != nil {
			slot.bar.SetCurrent(slot.total)
			slot.bar.SetTotal(slot.total, true)
		}
	}
	c.mu.Unlock()

	c.progress.Wait()
}

// Writer returns an io.Writer that safely prints above the progress bars.
func (c *ConsoleUI) Writer() io.Writer {
	if c.isTerminal {
		return c.progress
	}
	return os.Stderr
}

// IsTerminal returns whether output is to a terminal.
func (c *ConsoleUI) IsTerminal() bool {
	return c.isTerminal
}
