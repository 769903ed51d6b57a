package cli

import (
	"github.com/schollz/progressbar/v3"
)

// StageProgressReporter renders one progress bar per pipeline stage.
type StageProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewStageProgressReporter creates a reporter. A quiet reporter discards
// every event.
func NewStageProgressReporter(quiet bool) *StageProgressReporter {
	return &StageProgressReporter{quiet: quiet}
}

func (r *StageProgressReporter) Start(total int, description string) {
	if r.quiet || total == 0 {
		return
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *StageProgressReporter) Advance() {
	if r.bar != nil {
		r.bar.Add(1)
	}
}

func (r *StageProgressReporter) Finish() {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}
}
