package diag

import (
	"fmt"
	"sort"
)

// Bag collects logs up to a limit.
type Bag struct {
	items   []Log
	max     int
	dropped int
}

// NewBag creates a bag holding at most max logs; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Log, 0, capHint),
		max:   max,
	}
}

// Add добавляет лог, учитывая лимит.
// Возвращает false, если лог не добавлен (достигнут лимит).
func (b *Bag) Add(l Log) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, l)
	return true
}

// Cap returns the configured limit.
func (b *Bag) Cap() int {
	return b.max
}

// Dropped returns how many logs were rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы один лог с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы один лог с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Count returns the number of logs of the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice логов.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Log {
	return b.items
}

// Filter returns the logs observable at v.
func (b *Bag) Filter(v Verbosity) []Log {
	return Filter(v, b.items)
}

// Merge объединяет логи из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders logs by path, start, end, severity (desc) and id
// for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return lessLog(b.items[i], b.items[j])
	})
}

func lessLog(di, dj Log) bool {
	pi, _ := di.Primary()
	pj, _ := dj.Primary()
	pathI, pathJ := "", ""
	if pi.File != nil {
		pathI = pi.File.Path
	}
	if pj.File != nil {
		pathJ = pj.File.Path
	}
	// сначала по файлу
	if pathI != pathJ {
		return pathI < pathJ
	}
	if pi.Start != pj.Start {
		return pi.Start < pj.Start
	}
	if pi.End != pj.End {
		return pi.End < pj.End
	}
	// затем по severity (по убыванию: Error > Warning > Info)
	if di.Severity != dj.Severity {
		return di.Severity > dj.Severity
	}
	return di.ID < dj.ID
}

// Dedup drops logs repeating the message and primary span of an earlier one.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Log, 0, len(b.items))
	for _, l := range b.items {
		primary, _ := l.Primary()
		key := fmt.Sprintf("%s:%s:%s", l.ID, l.Message, primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, l)
	}
	b.items = newitems
}
