// Package progress reports progress of long checkpoint scans.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while checkpoint files are loaded.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter writing to w, or a CIReporter if
// the CI environment variable is set.
func NewReporter(description string, w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{description: description, w: w}
	}
	return &TerminalReporter{description: description, w: w}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	description string
	w           io.Writer
	bar         *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	description string
	w           io.Writer
	total       int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.w, "%s: %d file(s)\n", r.description, total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.description)
}
