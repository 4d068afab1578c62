package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	analysisCacheTTL        = 24 * time.Hour
	analysisCachePrefix     = "analysis:"
	matchLimit              = 3
	matchMinScore           = 0.5
	textDefaultConfidence   = 0.8
	textDefaultPortionGrams = 100
	maxConcurrentComponents = 4

	// Totals beyond these are almost certainly a bad extraction, the
	// client renders a "double-check this" hint.
	suspiciousCalories = 5000.0
	suspiciousGrams    = 3000.0
)

var ErrExtractionFailed = errors.New("analysis failed: could not extract food components")

// Matcher resolves one free-text food query to ranked candidates.
type Matcher interface {
	FindByText(ctx context.Context, query string, limit int, minScore float64) []MatchCandidate
}

// AnalysisService drives the end-to-end pipeline: extract components,
// match each against the catalog, scale to the selected portion,
// aggregate and score. Results are cached by content hash.
type AnalysisService struct {
	extractor VisionExtractor
	matcher   Matcher
	repo      FoodRepository
	cache     Cache
}

func NewAnalysisService(extractor VisionExtractor, matcher Matcher, repo FoodRepository, cache Cache) *AnalysisService {
	return &AnalysisService{extractor: extractor, matcher: matcher, repo: repo, cache: cache}
}

// AnalyzeImage accepts an https URL or a data URI.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, imageRef string) (*AnalysisResult, error) {
	cacheKey := analysisCachePrefix + utils.ContentHash([]byte(imageRef))
	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	components, err := s.extractor.ExtractComponents(ctx, imageRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	result := s.analyzeComponents(ctx, components)
	s.writeCache(ctx, cacheKey, result)
	return result, nil
}

// AnalyzeText splits a free-form description into naive components on
// commas, semicolons and newlines; each gets a fixed confidence and the
// 100g default portion.
func (s *AnalysisService) AnalyzeText(ctx context.Context, description string) (*AnalysisResult, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(description), " "))
	cacheKey := analysisCachePrefix + utils.ContentHash([]byte(normalized))
	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	components := splitTextComponents(description)
	result := s.analyzeComponents(ctx, components)
	s.writeCache(ctx, cacheKey, result)
	return result, nil
}

func splitTextComponents(description string) []FoodComponent {
	fields := strings.FieldsFunc(description, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	components := make([]FoodComponent, 0, len(fields))
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		components = append(components, FoodComponent{
			Name:                  name,
			EstimatedPortionGrams: textDefaultPortionGrams,
			Confidence:            textDefaultConfidence,
		})
	}
	return components
}

// analyzeComponents resolves every component independently and
// concurrently. One component's failure never aborts the others;
// items keep extraction order.
func (s *AnalysisService) analyzeComponents(ctx context.Context, components []FoodComponent) *AnalysisResult {
	debug := &AnalysisDebug{
		RequestID:  uuid.NewString(),
		Components: make([]ComponentTrace, len(components)),
	}

	resolved := make([]*AnalyzedItem, len(components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentComponents)
	for i, comp := range components {
		i, comp := i, comp
		g.Go(func() error {
			item, trace := s.resolveComponent(gctx, comp)
			resolved[i] = item
			debug.Components[i] = trace
			return nil
		})
	}
	_ = g.Wait()

	items := make([]AnalyzedItem, 0, len(components))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}

	result := &AnalysisResult{
		Items:  items,
		Totals: aggregateTotals(items),
		Debug:  debug,
	}
	if len(items) > 0 {
		names := make([]string, 0, len(items)+len(components))
		for _, it := range items {
			names = append(names, it.Name)
		}
		for _, c := range components {
			names = append(names, c.Name, c.Preparation)
		}
		result.HealthScore = ComputeHealthScore(result.Totals.NutrientTuple, names)
	}
	result.IsSuspicious = result.Totals.Calories > suspiciousCalories ||
		result.Totals.PortionGrams > suspiciousGrams
	return result
}

func (s *AnalysisService) resolveComponent(ctx context.Context, comp FoodComponent) (*AnalyzedItem, ComponentTrace) {
	trace := ComponentTrace{Name: comp.Name}

	query := strings.ToLower(strings.TrimSpace(comp.Name + " " + comp.Preparation))
	candidates := s.matcher.FindByText(ctx, query, matchLimit, matchMinScore)
	trace.Candidates = len(candidates)
	if len(candidates) == 0 {
		trace.Status = "no_match"
		trace.Detail = "no catalog record cleared the match threshold"
		return nil, trace
	}

	top := candidates[0]
	record, err := s.repo.FindByExternalID(ctx, top.Record.ExternalID)
	if err != nil {
		trace.Status = "error"
		trace.Detail = err.Error()
		return nil, trace
	}

	basis, nutrients := ResolveBasis(record)
	grams := SelectPortion(comp.EstimatedPortionGrams, record.Portions)
	scaled := ScaleNutrients(nutrients, grams)

	trace.Status = "matched"
	trace.Detail = record.Description
	return &AnalyzedItem{
		Name:         utils.NormalizeFoodName(comp.Name, 6),
		PortionGrams: grams,
		Nutrients:    scaled,
		Source:       record.Source,
		BasisUsed:    basis,
		MatchScore:   top.Score,
		TraceInfo:    fmt.Sprintf("matched %q (%s)", record.Description, record.DataTypeClass),
	}, trace
}

// aggregateTotals is the pointwise sum over scaled item tuples. Unknown
// optional fields count as zero here and only here.
func aggregateTotals(items []AnalyzedItem) NutrientTotals {
	totals := NutrientTotals{}
	var sodium, satFat float64
	var hasSodium, hasSatFat bool

	for _, it := range items {
		totals.Calories += it.Nutrients.Calories
		totals.Protein += it.Nutrients.Protein
		totals.Carbs += it.Nutrients.Carbs
		totals.Fat += it.Nutrients.Fat
		totals.Fiber += it.Nutrients.Fiber
		totals.Sugars += it.Nutrients.Sugars
		totals.PortionGrams += it.PortionGrams
		if it.Nutrients.Sodium != nil {
			sodium += *it.Nutrients.Sodium
			hasSodium = true
		}
		if it.Nutrients.SatFat != nil {
			satFat += *it.Nutrients.SatFat
			hasSatFat = true
		}
	}
	if hasSodium {
		totals.Sodium = &sodium
	}
	if hasSatFat {
		totals.SatFat = &satFat
	}
	if totals.PortionGrams > 0 {
		density := totals.Calories / totals.PortionGrams * 100
		totals.EnergyDensity = &density
	}
	return totals
}

func (s *AnalysisService) readCache(ctx context.Context, key string) *AnalysisResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("analysis cache read failed", "key", key, "error", err)
		}
		return nil
	}
	var result AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Warn("corrupt analysis cache entry", "key", key, "error", err)
		return nil
	}
	return &result
}

func (s *AnalysisService) writeCache(ctx context.Context, key string, result *AnalysisResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), analysisCacheTTL); err != nil {
		logger.Warn("analysis cache write failed", "key", key, "error", err)
	}
}
