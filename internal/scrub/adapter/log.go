package adapter

import (
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/scrub"
)

// Log records lifecycle calls. It reads and writes nothing, so it belongs
// after the primary adapter; as a primary its base value is always 0.
type Log struct {
	// Logger overrides the binding's logger when set.
	Logger *logging.Logger
}

func (a *Log) logger(b *scrub.Binding) *logging.Logger {
	if a.Logger != nil {
		return a.Logger.WithField("element", b.Target().ID())
	}
	return b.Logger()
}

func (a *Log) Init(b *scrub.Binding) {
	a.logger(b).Debug("init axis=%s", b.Resolver().Axis())
}

func (a *Log) Start(b *scrub.Binding) (int, error) {
	a.logger(b).Info("start text=%q", b.Target().Text())
	return 0, nil
}

func (a *Log) Change(b *scrub.Binding, value, delta int) {
	a.logger(b).Debug("change value=%d delta=%d", value, delta)
}

func (a *Log) End(b *scrub.Binding) {
	a.logger(b).Info("end text=%q", b.Target().Text())
}
