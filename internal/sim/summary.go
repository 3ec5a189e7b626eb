package sim

import (
	"sort"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/klondike/engine"
	"github.com/jason-s-yu/klondike/engine/agent"
	"github.com/jason-s-yu/klondike/internal/game"
)

// Rating bands a batch by win rate.
type Rating string

const (
	RatingExcellent  Rating = "excellent"
	RatingGood       Rating = "good"
	RatingAcceptable Rating = "acceptable"
	RatingCritical   Rating = "critical"
)

// RateWinRate maps a win percentage to its band.
func RateWinRate(pct float64) Rating {
	switch {
	case pct >= 15:
		return RatingExcellent
	case pct >= 8:
		return RatingGood
	case pct >= 3:
		return RatingAcceptable
	default:
		return RatingCritical
	}
}

// TagCount is one entry of a tag histogram.
type TagCount struct {
	Tag   agent.Tag `json:"tag"`
	Count int       `json:"count"`
}

// Summary aggregates a batch of results.
type Summary struct {
	BatchID uuid.UUID `json:"batchId"`
	Seed    uint64    `json:"seed"`
	Started time.Time `json:"started"`

	Games      int `json:"games"`
	Wins       int `json:"wins"`
	Stalemates int `json:"stalemates"`
	Timeouts   int `json:"timeouts"`

	WinRate       float64 `json:"winRate"` // percent
	StalemateRate float64 `json:"stalemateRate"`
	TimeoutRate   float64 `json:"timeoutRate"`

	AvgTurns float64 `json:"avgTurns"`
	MinTurns int     `json:"minTurns"`
	MaxTurns int     `json:"maxTurns"`

	AvgDuration time.Duration `json:"avgDuration"`
	MinDuration time.Duration `json:"minDuration"`
	MaxDuration time.Duration `json:"maxDuration"`

	AvgFoundationCards float64 `json:"avgFoundationCards"`
	AvgCompletion      float64 `json:"avgCompletion"` // percent of the deck

	Causes      map[game.Cause]int `json:"causes"`
	WinningTags []TagCount         `json:"winningTags"` // most frequent first

	Wall           time.Duration `json:"wall"`
	GamesPerSecond float64       `json:"gamesPerSecond"`
}

// Rating bands the summary's win rate.
func (s Summary) Rating() Rating { return RateWinRate(s.WinRate) }

// Summarize aggregates results played over wall time.
func Summarize(results []game.Result, wall time.Duration) Summary {
	s := Summary{
		Games:  len(results),
		Causes: make(map[game.Cause]int),
		Wall:   wall,
	}
	if len(results) == 0 {
		return s
	}

	var turns, cards int
	var dur time.Duration
	winning := make(map[agent.Tag]int)
	s.MinTurns = results[0].Turns
	s.MinDuration = results[0].Elapsed
	for _, r := range results {
		switch r.Outcome {
		case game.OutcomeWin:
			s.Wins++
			for _, t := range r.LastActions {
				winning[t]++
			}
		case game.OutcomeStalemate:
			s.Stalemates++
		case game.OutcomeTimeout:
			s.Timeouts++
		}
		s.Causes[r.Cause]++

		turns += r.Turns
		cards += r.FoundationCards
		dur += r.Elapsed
		s.MinTurns = min(s.MinTurns, r.Turns)
		s.MaxTurns = max(s.MaxTurns, r.Turns)
		s.MinDuration = min(s.MinDuration, r.Elapsed)
		s.MaxDuration = max(s.MaxDuration, r.Elapsed)
	}

	n := float64(len(results))
	s.WinRate = 100 * float64(s.Wins) / n
	s.StalemateRate = 100 * float64(s.Stalemates) / n
	s.TimeoutRate = 100 * float64(s.Timeouts) / n
	s.AvgTurns = float64(turns) / n
	s.AvgDuration = dur / time.Duration(len(results))
	s.AvgFoundationCards = float64(cards) / n
	s.AvgCompletion = 100 * s.AvgFoundationCards / engine.DeckSize
	if wall > 0 {
		s.GamesPerSecond = n / wall.Seconds()
	}

	for t, c := range winning {
		s.WinningTags = append(s.WinningTags, TagCount{Tag: t, Count: c})
	}
	sort.Slice(s.WinningTags, func(i, j int) bool {
		a, b := s.WinningTags[i], s.WinningTags[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})
	return s
}
