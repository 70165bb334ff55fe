package indicator

import (
	"fmt"
	"sort"
)

// Config declares the indicators a strategy needs for one subscription.
type Config struct {
	// EWMAWindows lists the EMA periods to track as independent states,
	// e.g. 12 and 26.
	EWMAWindows []int `json:"ewmaWindows,omitempty"`

	MACD *MACDConfig `json:"macd,omitempty"`
}

func (c Config) Validate() error {
	for _, window := range c.EWMAWindows {
		if window <= 0 {
			return fmt.Errorf("invalid ewma window %d", window)
		}
	}

	if c.MACD != nil {
		macd := *c.MACD
		macd.Defaults()
		if macd.ShortPeriod >= macd.LongPeriod {
			return fmt.Errorf("macd short period %d must be less than long period %d",
				macd.ShortPeriod, macd.LongPeriod)
		}
	}

	return nil
}

// Set is the per-subscription indicator state. Fields are exported for
// snapshot persistence; access is confined to the subscription's lane.
type Set struct {
	EWMAs map[int]*EWMA `json:"ewmas,omitempty"`
	MACD  *MACD         `json:"macd,omitempty"`
}

func NewSet(c Config) *Set {
	set := &Set{}

	if len(c.EWMAWindows) > 0 {
		set.EWMAs = make(map[int]*EWMA, len(c.EWMAWindows))
		for _, window := range c.EWMAWindows {
			set.EWMAs[window] = NewEWMA(window)
		}
	}

	if c.MACD != nil {
		set.MACD = NewMACD(*c.MACD)
	}

	return set
}

// Update applies one close price to every indicator in the set. O(1) per
// indicator, no history is kept.
func (s *Set) Update(closePrice float64) {
	for _, inc := range s.EWMAs {
		inc.Update(closePrice)
	}

	if s.MACD != nil {
		s.MACD.Update(closePrice)
	}
}

type EWMASnapshot struct {
	Window int     `json:"window"`
	Value  float64 `json:"value"`
	Ready  bool    `json:"ready"`
}

type MACDSnapshot struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Ready     bool    `json:"ready"`

	GoldenCross bool  `json:"goldenCross"`
	DeathCross  bool  `json:"deathCross"`
	Trend       Trend `json:"trend"`
}

// Snapshot is the immutable view of the set handed to a strategy at fire
// time. It carries no references back to the live state.
type Snapshot struct {
	EWMA map[int]EWMASnapshot `json:"ewma,omitempty"`
	MACD *MACDSnapshot        `json:"macd,omitempty"`
}

func (s *Set) Snapshot() Snapshot {
	var snapshot Snapshot

	if len(s.EWMAs) > 0 {
		snapshot.EWMA = make(map[int]EWMASnapshot, len(s.EWMAs))
		for window, inc := range s.EWMAs {
			value, ready := inc.Last()
			snapshot.EWMA[window] = EWMASnapshot{Window: window, Value: value, Ready: ready}
		}
	}

	if s.MACD != nil {
		macd, signal, histogram, ready := s.MACD.Last()
		snapshot.MACD = &MACDSnapshot{
			MACD:        macd,
			Signal:      signal,
			Histogram:   histogram,
			Ready:       ready,
			GoldenCross: s.MACD.GoldenCross(),
			DeathCross:  s.MACD.DeathCross(),
			Trend:       s.MACD.TrendSignal(),
		}
	}

	return snapshot
}

// Windows returns the tracked EMA windows in ascending order.
func (s *Set) Windows() (windows []int) {
	for window := range s.EWMAs {
		windows = append(windows, window)
	}
	sort.Ints(windows)
	return windows
}
