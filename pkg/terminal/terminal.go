// Package terminal provides a responsive viewport backed by the size of a
// terminal. Queries are evaluated against the column count multiplied by the
// configured cell width.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/responsive"
	"golang.org/x/term"
)

// DefaultDebounce is the default delay between a resize and the width update.
const DefaultDebounce = 50 * time.Millisecond

// Viewport follows the width of a terminal. It embeds a responsive.Viewport,
// so it serves directly as a Resolver's Evaluator and Notifier.
type Viewport struct {
	*responsive.Viewport

	fd        int
	cellWidth float64
	debounce  time.Duration
	clock     clockz.Clock
	getSize   func(fd int) (width, height int, err error)
}

// New creates a Viewport for the terminal on file descriptor fd, typically
// int(os.Stdout.Fd()). The width is zero until Sync or Run is called.
func New(fd int) *Viewport {
	return &Viewport{
		Viewport:  responsive.NewViewport(0),
		fd:        fd,
		cellWidth: 1,
		debounce:  DefaultDebounce,
		clock:     clockz.RealClock,
		getSize:   term.GetSize,
	}
}

// CellWidth sets how many pixels one column counts as. The default of 1
// lets breakpoints be written in columns.
func (v *Viewport) CellWidth(px float64) *Viewport {
	v.cellWidth = px
	return v
}

// Debounce sets how long resizes are coalesced before the width changes.
// Zero applies every resize immediately.
func (v *Viewport) Debounce(d time.Duration) *Viewport {
	v.debounce = d
	return v
}

// Clock sets the clock used for debouncing.
func (v *Viewport) Clock(clock clockz.Clock) *Viewport {
	v.clock = clock
	return v
}

// IsTerminal reports whether the file descriptor refers to a terminal.
func (v *Viewport) IsTerminal() bool {
	return term.IsTerminal(v.fd)
}

// Columns returns the current column count of the terminal.
func (v *Viewport) Columns() (int, error) {
	width, _, err := v.getSize(v.fd)
	if err != nil {
		return 0, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return width, nil
}

// Sync reads the terminal size and updates the width, notifying subscribers
// when it changed.
func (v *Viewport) Sync() error {
	cols, err := v.Columns()
	if err != nil {
		return err
	}
	v.SetWidth(float64(cols) * v.cellWidth)
	return nil
}

// Run syncs the width once, then follows terminal resizes until ctx is
// canceled.
func (v *Viewport) Run(ctx context.Context) error {
	if err := v.Sync(); err != nil {
		return err
	}
	v.follow(ctx, resizes(ctx, v.clock))
	return nil
}

// follow applies resize notifications with debouncing.
func (v *Viewport) follow(ctx context.Context, resized <-chan struct{}) {
	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case _, ok := <-resized:
			if !ok {
				if pending {
					_ = v.Sync() //nolint:errcheck // Size errors leave the last width
				}
				return
			}
			if v.debounce <= 0 {
				_ = v.Sync() //nolint:errcheck // Size errors leave the last width
				continue
			}

			pending = true
			if timer == nil {
				timer = v.clock.NewTimer(v.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(v.debounce)
			}

		case <-timerC:
			if pending {
				_ = v.Sync() //nolint:errcheck // Size errors leave the last width
				pending = false
			}
		}
	}
}
