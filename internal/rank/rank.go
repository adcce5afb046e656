// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank selects the final top-K sections from the scored pool. The
// greedy loop re-scores remaining candidates after every pick, because the
// diversity and coverage bonuses depend on what is already selected; it is
// the one pipeline stage that must run single-threaded.
package rank

import (
	"strings"

	"github.com/kanishkapan/docintel/internal/persona"
	"github.com/kanishkapan/docintel/pkg/types"
)

// Secondary composite weights. Relevance dominates; diversity and coverage
// steer the selection away from near-duplicates and toward untouched
// topics; the small type and length terms break up ties between otherwise
// similar candidates.
const (
	relevanceWeight = 0.4
	diversityWeight = 0.2
	coverageWeight  = 0.2
	typeWeight      = 0.1
	lengthWeight    = 0.1

	// balancePenalty is subtracted from a candidate's secondary score once
	// its document has hit the per-document cap, applied after the other
	// bonuses so it never inflates a score, only suppresses one.
	balancePenalty = 0.25
)

// Excerpt word-count window for the length-fit bonus.
const (
	lengthFitMin = 50
	lengthFitMax = 300
)

// candidate decorates a ScoredSection with the precomputed state the
// greedy loop consults on every pass.
type candidate struct {
	types.ScoredSection

	// tokens is the stop-word-filtered token set of title+body, shared
	// with the diversity measure.
	tokens map[string]struct{}

	// topics lists the indices of persona priority topics this section
	// covers.
	topics []int

	// docOrder is the document's first-appearance position in the input,
	// used as a deterministic tie-break.
	docOrder int
}

// Select picks at most cfg.MaxResults sections from the scored pool. The
// result is deterministic for identical input order: ties resolve by
// original relevance, then page number, then document input order, then
// title.
func Select(scored []types.ScoredSection, ctx types.PersonaContext, cfg types.SelectionConfig) types.RankedResult {
	pool := buildCandidates(scored, ctx)
	pool = applyFloor(pool, cfg.RelevanceFloor)
	if len(pool) == 0 {
		return types.RankedResult{}
	}

	numDocs := countDocuments(pool)
	capActive := numDocs >= cfg.MinDocsForCap

	var selected []candidate
	covered := make(map[int]bool)
	docPicks := make(map[string]int)

	for len(selected) < cfg.MaxResults && len(pool) > 0 {
		bestIdx := -1
		bestScore := 0.0
		for i := range pool {
			s := secondaryScore(&pool[i], selected, covered, ctx)
			if capActive && docPicks[pool[i].DocumentID] >= cfg.PerDocumentCap && hasUncappedDocument(pool, docPicks, cfg.PerDocumentCap) {
				s -= balancePenalty
				if s < 0 {
					s = 0
				}
			}
			if bestIdx == -1 || better(&pool[i], &pool[bestIdx], s, bestScore) {
				bestIdx = i
				bestScore = s
			}
		}

		pick := pool[bestIdx]
		selected = append(selected, pick)
		docPicks[pick.DocumentID]++
		for _, t := range pick.topics {
			covered[t] = true
		}
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	result := types.RankedResult{Entries: make([]types.RankedEntry, len(selected))}
	for i, c := range selected {
		result.Entries[i] = types.RankedEntry{
			ScoredSection:  c.ScoredSection,
			ImportanceRank: i + 1,
		}
	}
	return result
}

func buildCandidates(scored []types.ScoredSection, ctx types.PersonaContext) []candidate {
	order := make(map[string]int)
	pool := make([]candidate, 0, len(scored))
	for _, s := range scored {
		if _, seen := order[s.DocumentID]; !seen {
			order[s.DocumentID] = len(order)
		}
		pool = append(pool, candidate{
			ScoredSection: s,
			tokens:        persona.TokenSet(s.Title + " " + s.Body),
			topics:        coveredTopics(s, ctx.PriorityTopics),
			docOrder:      order[s.DocumentID],
		})
	}
	return pool
}

func coveredTopics(s types.ScoredSection, topics []types.Topic) []int {
	text := strings.ToLower(s.Title + " " + s.Body)
	var covered []int
	for i, topic := range topics {
		for _, term := range topic.Terms {
			if strings.Contains(text, term) {
				covered = append(covered, i)
				break
			}
		}
	}
	return covered
}

// applyFloor drops candidates below the relevance floor while keeping each
// document's single best candidate, so every document with text stays
// representable. When nothing anywhere clears the floor, the survivors are
// exactly the per-document best sections.
func applyFloor(pool []candidate, floor float64) []candidate {
	best := make(map[string]int)
	for i, c := range pool {
		b, ok := best[c.DocumentID]
		if !ok || c.Relevance > pool[b].Relevance {
			best[c.DocumentID] = i
		}
	}

	kept := pool[:0]
	for i, c := range pool {
		if c.Relevance >= floor || best[c.DocumentID] == i {
			kept = append(kept, c)
		}
	}
	return kept
}

func countDocuments(pool []candidate) int {
	docs := make(map[string]bool)
	for _, c := range pool {
		docs[c.DocumentID] = true
	}
	return len(docs)
}

// hasUncappedDocument reports whether any remaining candidate belongs to a
// document still under the cap. When every remaining document is capped,
// the balancing penalty is waived rather than starving the result.
func hasUncappedDocument(pool []candidate, docPicks map[string]int, perDocCap int) bool {
	for _, c := range pool {
		if docPicks[c.DocumentID] < perDocCap {
			return true
		}
	}
	return false
}

// secondaryScore is the selection-order-dependent composite. Diversity and
// coverage shrink as the selection grows; relevance, type, and length fit
// are static per candidate.
func secondaryScore(c *candidate, selected []candidate, covered map[int]bool, ctx types.PersonaContext) float64 {
	return relevanceWeight*c.Relevance +
		diversityWeight*diversityBonus(c, selected) +
		coverageWeight*coverageBonus(c, covered, len(ctx.PriorityTopics)) +
		typeWeight*c.Sub.SectionType +
		lengthWeight*lengthFit(c.Body)
}

// diversityBonus is 1 minus the highest Jaccard similarity between the
// candidate's token set and any already-selected section. The first pick
// always gets the full bonus.
func diversityBonus(c *candidate, selected []candidate) float64 {
	maxSim := 0.0
	for i := range selected {
		if sim := jaccard(c.tokens, selected[i].tokens); sim > maxSim {
			maxSim = sim
		}
	}
	return 1.0 - maxSim
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// coverageBonus is the fraction of priority topics this candidate would
// newly cover. Neutral when the persona has no topics.
func coverageBonus(c *candidate, covered map[int]bool, totalTopics int) float64 {
	if totalTopics == 0 {
		return 0.5
	}
	fresh := 0
	for _, t := range c.topics {
		if !covered[t] {
			fresh++
		}
	}
	return float64(fresh) / float64(totalTopics)
}

// lengthFit rewards bodies inside the target word-count window. Short
// bodies ramp up linearly; long bodies decay gently and never below 0.5.
func lengthFit(body string) float64 {
	wc := len(strings.Fields(body))
	switch {
	case wc < lengthFitMin:
		return float64(wc) / float64(lengthFitMin)
	case wc <= lengthFitMax:
		return 1.0
	default:
		over := float64(wc-lengthFitMax) / 1000.0
		if over > 0.5 {
			over = 0.5
		}
		return 1.0 - over
	}
}

// better orders candidates by secondary score with deterministic
// tie-breaks.
func better(a, b *candidate, sa, sb float64) bool {
	if sa != sb {
		return sa > sb
	}
	if a.Relevance != b.Relevance {
		return a.Relevance > b.Relevance
	}
	if a.Page != b.Page {
		return a.Page < b.Page
	}
	if a.docOrder != b.docOrder {
		return a.docOrder < b.docOrder
	}
	return a.Title < b.Title
}
