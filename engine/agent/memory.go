package agent

// memory is the per-game recollection the loop detector works from: a
// bounded list of recent action tags and a bounded list of the position
// fingerprints seen at the start of each turn.
type memory struct {
	tags   []Tag
	prints []uint64
	// diversions counts consecutive turns resolved by the diversion policy.
	diversions int
}

func (m *memory) reset() {
	m.tags = m.tags[:0]
	m.prints = m.prints[:0]
	m.diversions = 0
}

// record appends one turn, dropping the oldest entries past the caps.
func (m *memory) record(cfg *Config, tag Tag, fp uint64) {
	m.tags = append(m.tags, tag)
	if over := len(m.tags) - cfg.HistoryLen; over > 0 {
		m.tags = m.tags[over:]
	}
	m.prints = append(m.prints, fp)
	if over := len(m.prints) - cfg.FingerprintCap; over > 0 {
		m.prints = m.prints[over:]
	}
	if tag.IsDiversion() {
		m.diversions++
	} else {
		m.diversions = 0
	}
}

// lastTags returns up to n of the most recent tags, oldest first.
func (m *memory) lastTags(n int) []Tag {
	if n > len(m.tags) {
		n = len(m.tags)
	}
	return m.tags[len(m.tags)-n:]
}

// ---------------------------------------------------------------------------
// Loop signals
// ---------------------------------------------------------------------------

// saturated reports whether taking candidate would make more than the limit
// of the last SaturationWindow tags stock handling.
func (m *memory) saturated(cfg *Config, candidate Tag) bool {
	window := m.lastTags(cfg.SaturationWindow - 1)
	if len(window)+1 < cfg.SaturationWindow {
		return false
	}
	n := 0
	if candidate.IsStockHandling() {
		n++
	}
	for _, t := range window {
		if t.IsStockHandling() {
			n++
		}
	}
	return n > cfg.SaturationLimit
}

// monotonous reports whether taking candidate would leave at most
// MonotonyDistinct different tags in the last MonotonyWindow.
func (m *memory) monotonous(cfg *Config, candidate Tag) bool {
	window := m.lastTags(cfg.MonotonyWindow - 1)
	if len(window)+1 < cfg.MonotonyWindow {
		return false
	}
	distinct := []Tag{candidate}
	for _, t := range window {
		found := false
		for _, d := range distinct {
			if d == t {
				found = true
				break
			}
		}
		if !found {
			distinct = append(distinct, t)
			if len(distinct) > cfg.MonotonyDistinct {
				return false
			}
		}
	}
	return true
}

// recurring reports whether fp was recorded more than FingerprintRepeats
// times among the last FingerprintWindow turns.
func (m *memory) recurring(cfg *Config, fp uint64) bool {
	start := len(m.prints) - cfg.FingerprintWindow
	if start < 0 {
		start = 0
	}
	n := 0
	for _, p := range m.prints[start:] {
		if p == fp {
			n++
			if n > cfg.FingerprintRepeats {
				return true
			}
		}
	}
	return false
}

// stockHeavy reports whether at least StockHeavyShare of the last
// StockHeavyWindow recorded tags are stock handling.
func (m *memory) stockHeavy(cfg *Config) bool {
	window := m.lastTags(cfg.StockHeavyWindow)
	if len(window) < cfg.StockHeavyWindow {
		return false
	}
	n := 0
	for _, t := range window {
		if t.IsStockHandling() {
			n++
		}
	}
	return float64(n)+1e-9 >= cfg.StockHeavyShare*float64(len(window))
}

// looping reports whether candidate trips any loop signal at position fp.
func (m *memory) looping(cfg *Config, candidate Tag, fp uint64) bool {
	return m.recurring(cfg, fp) || m.saturated(cfg, candidate) || m.monotonous(cfg, candidate)
}
