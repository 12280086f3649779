package diag

// Reporter - минимальный контракт получения диагностик от лексера и парсера.
// Реализации: BagReporter (кладёт в Bag), Collector, NopReporter.
type Reporter interface {
	Report(d Diagnosable)
}

// BagReporter - адаптер, который пишет произведённые логи в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnosable) {
	if r.Bag == nil || d == nil {
		return
	}
	r.Bag.Add(d.Produce())
}

// Collector keeps the diagnostics themselves, in report order.
type Collector struct {
	Items []Diagnosable
}

func (c *Collector) Report(d Diagnosable) {
	if d == nil {
		return
	}
	c.Items = append(c.Items, d)
}

// Logs produces a log for every collected diagnostic.
func (c *Collector) Logs() []Log {
	out := make([]Log, 0, len(c.Items))
	for _, d := range c.Items {
		out = append(out, d.Produce())
	}
	return out
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnosable) {}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnosable)

func (f ReporterFunc) Report(d Diagnosable) { f(d) }

// MultiReporter fans out to every reporter.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnosable) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
