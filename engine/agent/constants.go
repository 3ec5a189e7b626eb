package agent

import "fmt"

// Tag names the family of an action the agent took. Tags feed the loop
// detector and the harness statistics.
type Tag string

const (
	TagFoundation         Tag = "foundation"          // P1: tableau to foundation
	TagReserveFoundation  Tag = "reserve_foundation"  // P2
	TagTableau            Tag = "tableau"             // P3: column to column
	TagReserveKing        Tag = "reserve_king"        // P4: reserve King onto an empty column
	TagReserveTableau     Tag = "reserve_tableau"     // P4: reserve onto a sequence
	TagDraw               Tag = "draw"                // P5
	TagReshuffle          Tag = "reshuffle"           // P6
	TagDiscard            Tag = "discard"             // P7
	TagDiversionKing      Tag = "diversion_king"      // diversion: King onto an empty column
	TagDiversionMove      Tag = "diversion_move"      // diversion: any column move
	TagDiversionReserve   Tag = "diversion_reserve"   // diversion: reserve onto the tableau
	TagDiversionDiscard   Tag = "diversion_discard"   // diversion: forced discard
	TagDiversionDraw      Tag = "diversion_draw"      // diversion: forced draw
	TagDiversionReshuffle Tag = "diversion_reshuffle" // diversion: forced reshuffle
	TagEmergencyDraw      Tag = "emergency_draw"      // P10
	TagForcedEnd          Tag = "forced_end"          // diversion gave up
	TagNone               Tag = "none"                // P11: nothing applicable
)

// IsStockHandling reports whether t only cycles the stock, reserve and
// discard pile without touching the tableau or foundations.
func (t Tag) IsStockHandling() bool {
	return t == TagDraw || t == TagDiscard || t == TagReshuffle
}

// IsDiversion reports whether t was produced by the diversion policy.
func (t Tag) IsDiversion() bool {
	switch t {
	case TagDiversionKing, TagDiversionMove, TagDiversionReserve, TagDiversionDiscard, TagDiversionDraw, TagDiversionReshuffle, TagForcedEnd:
		return true
	}
	return false
}

// IsTerminal reports whether t ends the game: the agent either found nothing
// to do or gave up on a loop.
func (t Tag) IsTerminal() bool { return t == TagNone || t == TagForcedEnd }

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds the agent's thresholds. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// HistoryLen bounds the recorded action tags.
	HistoryLen int `yaml:"history_len" json:"history_len"`

	// Saturation: flag when more than SaturationLimit of the last
	// SaturationWindow tags (candidate included) are stock handling.
	SaturationWindow int `yaml:"saturation_window" json:"saturation_window"`
	SaturationLimit  int `yaml:"saturation_limit" json:"saturation_limit"`

	// Monotony: flag when at most MonotonyDistinct different tags appear in
	// the last MonotonyWindow tags (candidate included).
	MonotonyWindow   int `yaml:"monotony_window" json:"monotony_window"`
	MonotonyDistinct int `yaml:"monotony_distinct" json:"monotony_distinct"`

	// Recurrence: flag when the current fingerprint was recorded more than
	// FingerprintRepeats times among the last FingerprintWindow turns.
	FingerprintWindow  int `yaml:"fingerprint_window" json:"fingerprint_window"`
	FingerprintRepeats int `yaml:"fingerprint_repeats" json:"fingerprint_repeats"`
	// FingerprintCap bounds the fingerprint memory; the oldest are dropped.
	FingerprintCap int `yaml:"fingerprint_cap" json:"fingerprint_cap"`

	// StockHeavyWindow/StockHeavyShare trigger the aggressive diversion when
	// that share of the recent recorded tags is stock handling.
	StockHeavyWindow int     `yaml:"stock_heavy_window" json:"stock_heavy_window"`
	StockHeavyShare  float64 `yaml:"stock_heavy_share" json:"stock_heavy_share"`

	// DiversionLimit is the number of consecutive diversion turns after
	// which the agent gives up and ends the game.
	DiversionLimit int `yaml:"diversion_limit" json:"diversion_limit"`

	// Column-move search: runs of at most MaxRunScan cards are considered
	// and the best ColumnAttempts are tried.
	MaxRunScan     int `yaml:"max_run_scan" json:"max_run_scan"`
	ColumnAttempts int `yaml:"column_attempts" json:"column_attempts"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		HistoryLen:         30,
		SaturationWindow:   15,
		SaturationLimit:    12,
		MonotonyWindow:     10,
		MonotonyDistinct:   2,
		FingerprintWindow:  50,
		FingerprintRepeats: 3,
		FingerprintCap:     1000,
		StockHeavyWindow:   10,
		StockHeavyShare:    0.7,
		DiversionLimit:     50,
		MaxRunScan:         3,
		ColumnAttempts:     3,
	}
}

// Validate checks that the thresholds are usable.
func (c Config) Validate() error {
	switch {
	case c.HistoryLen < c.SaturationWindow || c.HistoryLen < c.MonotonyWindow || c.HistoryLen < c.StockHeavyWindow:
		return fmt.Errorf("history_len %d is shorter than a detector window", c.HistoryLen)
	case c.SaturationWindow <= 0 || c.SaturationLimit < 0 || c.SaturationLimit >= c.SaturationWindow:
		return fmt.Errorf("saturation limit %d/%d out of range", c.SaturationLimit, c.SaturationWindow)
	case c.MonotonyWindow <= 0 || c.MonotonyDistinct < 1:
		return fmt.Errorf("monotony %d/%d out of range", c.MonotonyDistinct, c.MonotonyWindow)
	case c.FingerprintWindow <= 0 || c.FingerprintRepeats < 1:
		return fmt.Errorf("fingerprint recurrence %d/%d out of range", c.FingerprintRepeats, c.FingerprintWindow)
	case c.FingerprintCap < c.FingerprintWindow:
		return fmt.Errorf("fingerprint_cap %d is smaller than fingerprint_window %d", c.FingerprintCap, c.FingerprintWindow)
	case c.StockHeavyWindow <= 0 || c.StockHeavyShare <= 0 || c.StockHeavyShare > 1:
		return fmt.Errorf("stock-heavy share %.2f over %d out of range", c.StockHeavyShare, c.StockHeavyWindow)
	case c.DiversionLimit < 1:
		return fmt.Errorf("diversion_limit must be positive, got %d", c.DiversionLimit)
	case c.MaxRunScan < 1 || c.ColumnAttempts < 1:
		return fmt.Errorf("column search limits must be positive")
	}
	return nil
}
