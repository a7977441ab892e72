// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// BarRenderer draws the classic bracketed bar:
//
//	label [==============>               ] 42% 4.2k/10k 00:12 ETA 00:17
//
// Frames are carriage-return overwritten, so it expects a terminal-like
// writer. Done prints a final full frame and a newline.
type BarRenderer struct {
	// Width is the number of cells between the brackets.
	Width int
}

func (r *BarRenderer) Render(w io.Writer, s Snapshot) {
	fmt.Fprintf(w, "\r%s", r.frame(s))
}

func (r *BarRenderer) Done(w io.Writer, s Snapshot) {
	fmt.Fprintf(w, "\r%s\n", r.frame(s))
}

func (r *BarRenderer) frame(s Snapshot) string {
	width := r.Width
	if width <= 0 {
		width = 40
	}

	filled := int(s.Frac * float64(width))
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	if s.Label != "" {
		bar.WriteString(s.Label)
		bar.WriteByte(' ')
	}
	bar.WriteByte('[')
	if filled > 0 {
		bar.WriteString(strings.Repeat("=", filled-1))
		if filled < width {
			bar.WriteByte('>')
		} else {
			bar.WriteByte('=')
		}
	}
	bar.WriteString(strings.Repeat(" ", width-filled))
	bar.WriteByte(']')

	fmt.Fprintf(&bar, " %3.0f%%", s.Frac*100)
	if s.Total > 0 {
		fmt.Fprintf(&bar, " %s/%s", siCount(s.Current), siCount(s.Total))
	}
	fmt.Fprintf(&bar, " %s", clock(s.Elapsed))
	if s.ETA > 0 && s.State != StateFinalized {
		fmt.Fprintf(&bar, " ETA %s", clock(s.ETA))
	}
	return bar.String()
}

// TickRenderer emits the console percent-scale style: a 0-100 header line
// printed on the first frame, then tick characters as progress passes each
// mark. Output is append-only, so it works on non-terminal writers (CI
// logs, files).
//
//	0%   10   20   30   40   50   60   70   80   90   100%
//	[----|----|----|----|----|----|----|----|----|----]
//	[*************
type TickRenderer struct {
	headerDone bool
	ticks      int
}

// tickCount is the number of marks between 0 and 100%.
const tickCount = 50

func (r *TickRenderer) Render(w io.Writer, s Snapshot) {
	if !r.headerDone {
		fmt.Fprintln(w, "0%   10   20   30   40   50   60   70   80   90   100%")
		fmt.Fprintln(w, "[----|----|----|----|----|----|----|----|----|----]")
		fmt.Fprint(w, "[")
		r.headerDone = true
	}

	want := int(s.Frac * tickCount)
	for r.ticks < want {
		fmt.Fprint(w, "*")
		r.ticks++
	}
}

func (r *TickRenderer) Done(w io.Writer, s Snapshot) {
	if !r.headerDone {
		r.Render(w, s)
	}
	for r.ticks < tickCount {
		fmt.Fprint(w, "*")
		r.ticks++
	}
	fmt.Fprintln(w, "]")
}

// siCount formats a count with an SI prefix ("4.2 k"), without the
// trailing space humanize leaves for an empty unit.
func siCount(n int64) string {
	return strings.TrimSpace(humanize.SIWithDigits(float64(n), 1, ""))
}

// clock formats a duration as mm:ss, or hh:mm:ss past an hour.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
