package trace

import "errors"

// fanout sends every event to a stream sink and the ring at once.
type fanout struct {
	sinks []Tracer
	level Level
}

func newFanout(level Level, sinks ...Tracer) *fanout {
	return &fanout{sinks: sinks, level: level}
}

func (f *fanout) Emit(ev *Event) {
	for _, s := range f.sinks {
		s.Emit(ev)
	}
}

func (f *fanout) Flush() error {
	var errs []error
	for _, s := range f.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (f *fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (f *fanout) Level() Level  { return f.level }
func (f *fanout) Enabled() bool { return f.level > LevelOff }
