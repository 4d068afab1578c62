package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/models"
)

type fakeExtractor struct {
	components []FoodComponent
	err        error
	calls      int
}

func (f *fakeExtractor) ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.components, nil
}

type fakeMatcher struct {
	byQuery map[string][]MatchCandidate
	calls   int
}

func (f *fakeMatcher) FindByText(ctx context.Context, query string, limit int, minScore float64) []MatchCandidate {
	f.calls++
	return f.byQuery[query]
}

type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return "", ErrCacheMiss
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

// catalogRecord builds a per-100g composition record with a single
// known portion.
func catalogRecord(externalID, description string, calories, protein float64, portionGrams float64) *models.FoodRecord {
	rec := &models.FoodRecord{
		ExternalID:    externalID,
		Description:   description,
		DataTypeClass: models.DataTypeFoundation,
		Source:        models.SourceLocal,
		NutrientEntries: []models.NutrientEntry{
			{NutrientTypeID: NutrientIDEnergy, Amount: calories},
			{NutrientTypeID: NutrientIDProtein, Amount: protein},
		},
	}
	if portionGrams > 0 {
		rec.Portions = []models.Portion{{GramWeight: portionGrams}}
	}
	return rec
}

func candidateFor(rec *models.FoodRecord, score float64) []MatchCandidate {
	return []MatchCandidate{{Record: rec, Score: score}}
}

func newTestAnalysis(extractor VisionExtractor, matcher Matcher, repo FoodRepository, cache Cache) *AnalysisService {
	return NewAnalysisService(extractor, matcher, repo, cache)
}

func TestAnalyzeTextSingleComponent(t *testing.T) {
	chicken := catalogRecord("c1", "chicken breast, grilled", 165, 31, 100)
	repo := &fakeFoodRepo{records: map[string]*models.FoodRecord{"c1": chicken}}
	matcher := &fakeMatcher{byQuery: map[string][]MatchCandidate{
		"grilled chicken": candidateFor(chicken, 0.6),
	}}
	svc := newTestAnalysis(&fakeExtractor{}, matcher, repo, nil)

	res, err := svc.AnalyzeText(context.Background(), "grilled chicken")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(res.Items))
	}
	item := res.Items[0]
	if item.Name != "Grilled Chicken" {
		t.Fatalf("name = %q", item.Name)
	}
	if item.PortionGrams != 100 {
		t.Fatalf("portion = %v, want 100", item.PortionGrams)
	}
	if item.Nutrients.Calories != 165 {
		t.Fatalf("calories = %v, want 165", item.Nutrients.Calories)
	}
	if item.BasisUsed != BasisCompositionPer100g {
		t.Fatalf("basis = %q", item.BasisUsed)
	}
	if res.HealthScore == nil {
		t.Fatal("expected a health score for a non-empty result")
	}
	if res.Totals.EnergyDensity == nil || *res.Totals.EnergyDensity != 165 {
		t.Fatalf("energy density = %v, want 165", res.Totals.EnergyDensity)
	}
}

func TestAnalyzeTextSplitsComponents(t *testing.T) {
	got := splitTextComponents("rice, beans; eggs\ntoast,  ,")
	if len(got) != 4 {
		t.Fatalf("components = %d, want 4: %+v", len(got), got)
	}
	wantNames := []string{"rice", "beans", "eggs", "toast"}
	for i, w := range wantNames {
		if got[i].Name != w {
			t.Fatalf("component %d = %q, want %q", i, got[i].Name, w)
		}
		if got[i].EstimatedPortionGrams != textDefaultPortionGrams {
			t.Fatalf("component %d portion = %v", i, got[i].EstimatedPortionGrams)
		}
		if got[i].Confidence != textDefaultConfidence {
			t.Fatalf("component %d confidence = %v", i, got[i].Confidence)
		}
	}
}

func TestAnalyzeImageExtractionFailure(t *testing.T) {
	svc := newTestAnalysis(&fakeExtractor{err: errors.New("model offline")}, &fakeMatcher{}, &fakeFoodRepo{}, nil)

	_, err := svc.AnalyzeImage(context.Background(), "https://example.com/meal.jpg")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestAnalyzeImageComponentIsolation(t *testing.T) {
	rice := catalogRecord("r1", "rice, white, cooked", 130, 2.7, 150)
	beans := catalogRecord("b1", "black beans, cooked", 132, 8.9, 0)
	repo := &fakeFoodRepo{records: map[string]*models.FoodRecord{
		"r1": rice,
		"b1": beans,
	}}
	// The middle component has a candidate whose record vanished from
	// the catalog, so its lookup errors out.
	ghost := catalogRecord("ghost", "phantom food", 1, 1, 0)
	matcher := &fakeMatcher{byQuery: map[string][]MatchCandidate{
		"rice":    candidateFor(rice, 0.6),
		"phantom": candidateFor(ghost, 0.6),
		"beans":   candidateFor(beans, 0.6),
	}}
	delete(repo.records, "ghost")

	extractor := &fakeExtractor{components: []FoodComponent{
		{Name: "rice", EstimatedPortionGrams: 150, Confidence: 0.9},
		{Name: "phantom", EstimatedPortionGrams: 50, Confidence: 0.8},
		{Name: "beans", EstimatedPortionGrams: 80, Confidence: 0.8},
	}}
	svc := newTestAnalysis(extractor, matcher, repo, nil)

	res, err := svc.AnalyzeImage(context.Background(), "https://example.com/bowl.jpg")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2 despite one failing component", len(res.Items))
	}
	// Extraction order survives the concurrent resolution.
	if res.Items[0].Name != "Rice" || res.Items[1].Name != "Beans" {
		t.Fatalf("item order: %q, %q", res.Items[0].Name, res.Items[1].Name)
	}
	if res.Debug == nil || len(res.Debug.Components) != 3 {
		t.Fatalf("debug traces missing: %+v", res.Debug)
	}
	if res.Debug.Components[1].Status != "error" {
		t.Fatalf("middle trace status = %q, want error", res.Debug.Components[1].Status)
	}
	if res.Debug.Components[0].Status != "matched" || res.Debug.Components[2].Status != "matched" {
		t.Fatalf("outer traces: %+v", res.Debug.Components)
	}
}

func TestAnalyzeNoMatchComponent(t *testing.T) {
	extractor := &fakeExtractor{components: []FoodComponent{
		{Name: "unidentifiable gruel", EstimatedPortionGrams: 200, Confidence: 0.7},
	}}
	svc := newTestAnalysis(extractor, &fakeMatcher{}, &fakeFoodRepo{}, nil)

	res, err := svc.AnalyzeImage(context.Background(), "https://example.com/gruel.jpg")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(res.Items))
	}
	if res.HealthScore != nil {
		t.Fatal("no items must mean no health score")
	}
	if res.Debug.Components[0].Status != "no_match" {
		t.Fatalf("trace = %+v", res.Debug.Components[0])
	}
}

func TestAnalyzeImageCacheHit(t *testing.T) {
	chicken := catalogRecord("c1", "chicken breast", 165, 31, 100)
	repo := &fakeFoodRepo{records: map[string]*models.FoodRecord{"c1": chicken}}
	matcher := &fakeMatcher{byQuery: map[string][]MatchCandidate{
		"chicken": candidateFor(chicken, 0.6),
	}}
	extractor := &fakeExtractor{components: []FoodComponent{
		{Name: "chicken", EstimatedPortionGrams: 100, Confidence: 0.9},
	}}
	svc := newTestAnalysis(extractor, matcher, repo, newMemCache())

	first, err := svc.AnalyzeImage(context.Background(), "https://example.com/meal.jpg")
	if err != nil {
		t.Fatalf("first analysis: %v", err)
	}
	second, err := svc.AnalyzeImage(context.Background(), "https://example.com/meal.jpg")
	if err != nil {
		t.Fatalf("second analysis: %v", err)
	}

	if extractor.calls != 1 {
		t.Fatalf("extractor calls = %d, cache should absorb the repeat", extractor.calls)
	}
	if len(second.Items) != len(first.Items) ||
		second.Totals.Calories != first.Totals.Calories ||
		second.Debug.RequestID != first.Debug.RequestID {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestAnalyzeTextCacheKeyIgnoresCaseAndSpacing(t *testing.T) {
	chicken := catalogRecord("c1", "chicken breast", 165, 31, 100)
	repo := &fakeFoodRepo{records: map[string]*models.FoodRecord{"c1": chicken}}
	matcher := &fakeMatcher{byQuery: map[string][]MatchCandidate{
		"grilled chicken": candidateFor(chicken, 0.6),
	}}
	svc := newTestAnalysis(&fakeExtractor{}, matcher, repo, newMemCache())

	if _, err := svc.AnalyzeText(context.Background(), "Grilled   Chicken"); err != nil {
		t.Fatalf("first: %v", err)
	}
	callsAfterFirst := matcher.calls
	if _, err := svc.AnalyzeText(context.Background(), "grilled chicken"); err != nil {
		t.Fatalf("second: %v", err)
	}
	if matcher.calls != callsAfterFirst {
		t.Fatalf("equivalent descriptions must share a cache entry, matcher calls went %d -> %d",
			callsAfterFirst, matcher.calls)
	}
}

func TestAggregateTotals(t *testing.T) {
	sodium := 300.0
	items := []AnalyzedItem{
		{PortionGrams: 100, Nutrients: NutrientTuple{Calories: 200, Protein: 10, Sodium: &sodium}},
		{PortionGrams: 100, Nutrients: NutrientTuple{Calories: 100, Protein: 5}},
	}
	totals := aggregateTotals(items)

	if totals.Calories != 300 || totals.Protein != 15 {
		t.Fatalf("totals = %+v", totals.NutrientTuple)
	}
	if totals.PortionGrams != 200 {
		t.Fatalf("grams = %v", totals.PortionGrams)
	}
	// Unknown sodium on one item counts as zero in the sum.
	if totals.Sodium == nil || *totals.Sodium != 300 {
		t.Fatalf("sodium = %v", totals.Sodium)
	}
	if totals.SatFat != nil {
		t.Fatal("satFat should stay nil when no item reported it")
	}
	if totals.EnergyDensity == nil || *totals.EnergyDensity != 150 {
		t.Fatalf("energy density = %v, want 150", totals.EnergyDensity)
	}
}

func TestSuspiciousTotalsFlag(t *testing.T) {
	feast := catalogRecord("f1", "lard, rendered", 900, 0, 0)
	repo := &fakeFoodRepo{records: map[string]*models.FoodRecord{"f1": feast}}
	matcher := &fakeMatcher{byQuery: map[string][]MatchCandidate{
		"lard": candidateFor(feast, 0.6),
	}}
	extractor := &fakeExtractor{components: []FoodComponent{
		{Name: "lard", EstimatedPortionGrams: 700, Confidence: 0.9},
	}}
	svc := newTestAnalysis(extractor, matcher, repo, nil)

	res, err := svc.AnalyzeImage(context.Background(), "https://example.com/lard.jpg")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	// 900 kcal/100g at 700g is 6300 kcal.
	if !res.IsSuspicious {
		t.Fatalf("totals %+v should be flagged suspicious", res.Totals)
	}
}
