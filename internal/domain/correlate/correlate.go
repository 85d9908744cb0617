// Package correlate pairs one cycle's prematch and live event
// collections into a single match set using a tiered strategy:
// embedded primary id, unique secondary key, then fuzzy name fallback.
package correlate

import (
	"context"
	"sort"
	"time"

	"github.com/okian/matchpoint/internal/domain/extract"
	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/internal/domain/names"
	"github.com/okian/matchpoint/internal/domain/similarity"
)

// Default policy constants. Both are tunable via options; the defaults
// are documented in the service configuration.
const (
	defaultThreshold = 0.75
	defaultWindow    = 24 * time.Hour
)

// Engine correlates the two providers' event collections for one
// cycle. Correlation is synchronous and deterministic given its inputs:
// all candidate orderings are explicit, never map iteration order.
type Engine struct {
	scorer    similarity.Scorer
	threshold float64
	window    time.Duration
}

// New constructs an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		scorer:    similarity.NewNameScorer(),
		threshold: defaultThreshold,
		window:    defaultWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Correlate produces a match set covering every input event exactly
// once. Records for paired events carry the tier that joined them;
// leftovers on either side become single-sided unmatched records. The
// engine never fails a cycle: an event whose fields cannot be used by
// a tier simply falls through to the next one.
func (e *Engine) Correlate(ctx context.Context, prematch []model.PrematchEvent, live []model.LiveEvent) []model.MatchRecord {
	// Stable working order: lowest native id first on both sides. This
	// is the documented tie-break for every "first candidate wins"
	// decision below.
	pre := make([]*model.PrematchEvent, len(prematch))
	for i := range prematch {
		pre[i] = &prematch[i]
	}
	sort.Slice(pre, func(i, j int) bool { return pre[i].ID < pre[j].ID })

	lv := make([]*model.LiveEvent, len(live))
	for i := range live {
		lv[i] = &live[i]
	}
	sort.Slice(lv, func(i, j int) bool { return lv[i].MarketID < lv[j].MarketID })

	records := make([]model.MatchRecord, 0, len(pre)+len(lv))
	preUsed := make([]bool, len(pre))
	lvUsed := make([]bool, len(lv))

	records = e.primaryIDPass(pre, lv, preUsed, lvUsed, records)
	records = e.secondaryKeyPass(pre, lv, preUsed, lvUsed, records)
	records = e.fuzzyNamePass(pre, lv, preUsed, lvUsed, records)

	// Finalization: everything still unconsumed is a single-sided record.
	for i, p := range pre {
		if !preUsed[i] {
			records = append(records, model.MatchRecord{Prematch: p, Tier: model.TierUnmatched})
		}
	}
	for i, l := range lv {
		if !lvUsed[i] {
			records = append(records, model.MatchRecord{Live: l, Tier: model.TierUnmatched})
		}
	}
	return records
}

// primaryIDPass joins live events whose composite market id embeds an
// unconsumed prematch event's native id.
func (e *Engine) primaryIDPass(pre []*model.PrematchEvent, lv []*model.LiveEvent, preUsed, lvUsed []bool, records []model.MatchRecord) []model.MatchRecord {
	byID := make(map[string]int, len(pre))
	for i, p := range pre {
		if p.ID != "" {
			byID[p.ID] = i
		}
	}
	for j, l := range lv {
		id, ok := extract.EventID(l.MarketID)
		if !ok {
			continue
		}
		i, ok := byID[id]
		if !ok || preUsed[i] {
			continue
		}
		records = append(records, model.MatchRecord{Prematch: pre[i], Live: l, Tier: model.TierPrimaryID})
		preUsed[i] = true
		lvUsed[j] = true
	}
	return records
}

// secondaryKeyPass joins remaining events on equal fixture ids, but
// only when the key uniquely identifies one remaining candidate on each
// side. An ambiguous key defers both sides to the fuzzy pass rather
// than guessing a pairing.
func (e *Engine) secondaryKeyPass(pre []*model.PrematchEvent, lv []*model.LiveEvent, preUsed, lvUsed []bool, records []model.MatchRecord) []model.MatchRecord {
	preByKey := make(map[string][]int)
	for i, p := range pre {
		if !preUsed[i] && p.FixtureID != "" {
			preByKey[p.FixtureID] = append(preByKey[p.FixtureID], i)
		}
	}
	lvByKey := make(map[string][]int)
	for j, l := range lv {
		if !lvUsed[j] && l.FixtureID != "" {
			lvByKey[l.FixtureID] = append(lvByKey[l.FixtureID], j)
		}
	}
	for j, l := range lv {
		if lvUsed[j] || l.FixtureID == "" {
			continue
		}
		if len(lvByKey[l.FixtureID]) != 1 {
			continue
		}
		candidates := preByKey[l.FixtureID]
		if len(candidates) != 1 {
			continue
		}
		i := candidates[0]
		if preUsed[i] {
			continue
		}
		records = append(records, model.MatchRecord{Prematch: pre[i], Live: l, Tier: model.TierSecondaryKey})
		preUsed[i] = true
		lvUsed[j] = true
	}
	return records
}

// candidate is one scored prematch/live pairing considered by the
// fuzzy pass.
type candidate struct {
	pre     int
	lv      int
	score   float64
	swapped bool
}

// fuzzyNamePass scores every remaining cross-source pairing whose start
// times plausibly correspond, then selects pairings greedily in
// descending score order above the acceptance threshold. Ties break by
// lowest prematch id, then lowest market id, for determinism.
func (e *Engine) fuzzyNamePass(pre []*model.PrematchEvent, lv []*model.LiveEvent, preUsed, lvUsed []bool, records []model.MatchRecord) []model.MatchRecord {
	var candidates []candidate
	for i, p := range pre {
		if preUsed[i] {
			continue
		}
		pp := similarity.Pair{Home: names.Normalize(p.Home), Away: names.Normalize(p.Away)}
		for j, l := range lv {
			if lvUsed[j] {
				continue
			}
			if !e.plausible(p.StartTime, l.StartTime) {
				continue
			}
			lp := similarity.Pair{Home: names.Normalize(l.Home), Away: names.Normalize(l.Away)}
			score, swapped := e.scorer.Pair(pp, lp)
			if score < e.threshold {
				continue
			}
			candidates = append(candidates, candidate{pre: i, lv: j, score: score, swapped: swapped})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.score != cb.score {
			return ca.score > cb.score
		}
		if pre[ca.pre].ID != pre[cb.pre].ID {
			return pre[ca.pre].ID < pre[cb.pre].ID
		}
		return lv[ca.lv].MarketID < lv[cb.lv].MarketID
	})

	for _, c := range candidates {
		if preUsed[c.pre] || lvUsed[c.lv] {
			continue
		}
		records = append(records, model.MatchRecord{
			Prematch: pre[c.pre],
			Live:     lv[c.lv],
			Tier:     model.TierFuzzyName,
			Score:    c.score,
			Swapped:  c.swapped,
		})
		preUsed[c.pre] = true
		lvUsed[c.lv] = true
	}
	return records
}

// plausible reports whether two start times are close enough for the
// events to be the same real-world match. A zero time on either side
// must not block the last remaining tier, so it always passes.
func (e *Engine) plausible(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return true
	}
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= e.window
}
