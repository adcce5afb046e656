// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"

	"github.com/kanishkapan/docintel/pkg/types"
)

func testConfig() types.ScoringConfig {
	return types.DefaultAnalysisConfig().Scoring
}

func TestScoreBounds(t *testing.T) {
	ctx := types.PersonaContext{
		Keywords: []types.Keyword{
			{Term: "learning", Weight: 3.0},
			{Term: "dataset", Weight: 2.0},
		},
		PriorityTopics: []types.Topic{
			{Name: "methodology", Terms: []string{"method", "approach"}},
		},
		Domain: types.DomainResearch,
	}
	sections := []types.Section{
		{Title: "Machine Learning Methods", Body: "We describe a dataset and approach.", Type: types.SectionHeading},
		{Title: "References", Body: "", Type: types.SectionHeading},
		{Title: "Document Page 3", Body: "Contains tabular data.", Type: types.SectionFallback},
		{Title: "", Body: "", Type: types.SectionContentBlock},
	}
	for _, sec := range sections {
		got := Score(sec, ctx, testConfig())
		if got.Relevance < 0 || got.Relevance > 1 {
			t.Errorf("Score(%q).Relevance = %v, want [0,1]", sec.Title, got.Relevance)
		}
		for name, sub := range map[string]float64{
			"Keyword": got.Sub.Keyword, "Topic": got.Sub.Topic,
			"Domain": got.Sub.Domain, "SectionType": got.Sub.SectionType,
		} {
			if sub < 0 || sub > 1 {
				t.Errorf("Score(%q).Sub.%s = %v, want [0,1]", sec.Title, name, sub)
			}
		}
	}
}

func TestKeywordScoreTitleOutweighsBody(t *testing.T) {
	ctx := types.PersonaContext{
		Keywords: []types.Keyword{{Term: "revenue", Weight: 1.0}},
	}
	inTitle := keywordScore("revenue growth", "nothing here", ctx)
	inBody := keywordScore("quarterly report", "revenue grew", ctx)
	if inTitle != 1.0 {
		t.Errorf("title match = %v, want 1.0", inTitle)
	}
	if inBody != bodyMatchWeight {
		t.Errorf("body match = %v, want %v", inBody, bodyMatchWeight)
	}
}

func TestKeywordScoreNoKeywords(t *testing.T) {
	if got := keywordScore("anything", "at all", types.PersonaContext{}); got != 0 {
		t.Errorf("keywordScore with empty keyword set = %v, want 0", got)
	}
}

func TestTopicScore(t *testing.T) {
	topics := []types.Topic{
		{Name: "methodology", Terms: []string{"method", "approach"}},
		{Name: "datasets", Terms: []string{"dataset", "corpus"}},
		{Name: "revenue", Terms: []string{"revenue", "income"}},
	}
	tests := []struct {
		name  string
		title string
		body  string
		want  float64
	}{
		{"none covered", "conclusion", "final remarks", 0},
		{"one of three", "methodology", "we outline the steps", 1.0 / 3.0},
		{"two of three", "method", "trained on a public corpus", 2.0 / 3.0},
		{"all covered", "approach", "dataset revenue", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topicScore(tt.title, tt.body, topics); got != tt.want {
				t.Errorf("topicScore = %v, want %v", got, tt.want)
			}
		})
	}
	if got := topicScore("anything", "", nil); got != 0.5 {
		t.Errorf("topicScore with no topics = %v, want neutral 0.5", got)
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  types.ContentCategory
	}{
		{"method", "methodology", "our approach uses a two-stage algorithm", types.CategoryMethod},
		{"result", "findings", "the result shows improved accuracy in every evaluation", types.CategoryResult},
		{"financial", "q3 earnings", "revenue and profit margin grew this quarter", types.CategoryFinancial},
		{"technical", "system architecture", "each component exposes an interface for deployment", types.CategoryTechnical},
		{"overview", "introduction", "this abstract gives the background", types.CategoryOverview},
		{"general", "miscellany", "nothing of note on this page", types.CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectCategory(tt.title, tt.body); got != tt.want {
				t.Errorf("detectCategory = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDomainScore(t *testing.T) {
	if got := domainScore(types.CategoryMethod, types.DomainResearch); got != 1.0 {
		t.Errorf("method/research affinity = %v, want 1.0", got)
	}
	if got := domainScore(types.CategoryFinancial, types.DomainBusiness); got != 1.0 {
		t.Errorf("financial/business affinity = %v, want 1.0", got)
	}
	if got := domainScore(types.CategoryFinancial, types.DomainResearch); got >= 0.5 {
		t.Errorf("financial/research affinity = %v, want below neutral", got)
	}
	if got := domainScore(types.CategoryMethod, types.DomainOther); got != 0.5 {
		t.Errorf("DomainOther affinity = %v, want neutral 0.5", got)
	}
}

func TestSectionTypeOrdering(t *testing.T) {
	h := sectionTypeWeights[types.SectionHeading]
	c := sectionTypeWeights[types.SectionContentBlock]
	f := sectionTypeWeights[types.SectionFallback]
	if !(h > c && c > f) {
		t.Errorf("type weights not ordered heading > content_block > fallback: %v %v %v", h, c, f)
	}
}

func TestScoreHeadingRanksAboveFallback(t *testing.T) {
	ctx := types.PersonaContext{
		Keywords: []types.Keyword{{Term: "methodology", Weight: 2.0}},
		Domain:   types.DomainResearch,
	}
	heading := Score(types.Section{
		Title: "Methodology", Body: "We detail the experiment protocol.",
		Type: types.SectionHeading,
	}, ctx, testConfig())
	fallback := Score(types.Section{
		Title: "Document Page 4", Body: "We detail the experiment protocol and methodology.",
		Type: types.SectionFallback,
	}, ctx, testConfig())
	if heading.Relevance <= fallback.Relevance {
		t.Errorf("heading relevance %v not above fallback %v", heading.Relevance, fallback.Relevance)
	}
	if heading.Category != types.CategoryMethod {
		t.Errorf("Category = %q, want %q", heading.Category, types.CategoryMethod)
	}
}
