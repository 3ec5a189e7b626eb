package engine

// Rules holds configurable table settings.
type Rules struct {
	// ReserveCapacity bounds the reserve. 1 is the single-slot reserve;
	// 0 lets drawn cards stack without limit.
	ReserveCapacity uint8 `yaml:"reserve_capacity" json:"reserve_capacity"`
	// MaxReshuffles caps how many times the discard pile may be recycled
	// into the stock. 0 = unlimited.
	MaxReshuffles uint16 `yaml:"max_reshuffles" json:"max_reshuffles"`
}

// DefaultRules returns the standard table: single-slot reserve, unlimited
// redeals.
func DefaultRules() Rules {
	return Rules{
		ReserveCapacity: 1,
		MaxReshuffles:   0,
	}
}

// reserveCap returns the effective reserve capacity, treating 0 as the
// largest number of cards the reserve can ever hold.
func (r *Rules) reserveCap() uint8 {
	if r.ReserveCapacity == 0 || r.ReserveCapacity > StockSize {
		return StockSize
	}
	return r.ReserveCapacity
}

// Stacking reports whether the reserve can hold more than one card.
func (r *Rules) Stacking() bool { return r.reserveCap() > 1 }
