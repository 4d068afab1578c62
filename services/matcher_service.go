package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/models"
)

const (
	// Local text search has no native relevance signal, every hit gets
	// this flat score.
	defaultLocalScore = 0.6
	// Remote hits were already vetted by the provider's own ranking.
	remoteMatchScore = 0.9

	matcherCallTimeout = 10 * time.Second
)

// Match-ranking tiers: branded label data first, legacy composition
// data last.
var dataTypeRank = map[string]int{
	models.DataTypeBranded:    0,
	models.DataTypeFoundation: 1,
	models.DataTypeSurvey:     2,
	models.DataTypeLegacy:     3,
}

// Embedder produces the query-intent vector for semantic retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// MatcherService resolves a free-text food query to candidate catalog
// records: local search first, remote USDA fallback when nothing local
// clears the threshold. It never returns an error; an empty slice means
// "no match, skip this component".
type MatcherService struct {
	repo     FoodRepository
	embedder Embedder
	remote   NutritionAPI
}

func NewMatcherService(repo FoodRepository, embedder Embedder, remote NutritionAPI) *MatcherService {
	return &MatcherService{repo: repo, embedder: embedder, remote: remote}
}

func (m *MatcherService) FindByText(ctx context.Context, query string, limit int, minScore float64) []MatchCandidate {
	if limit <= 0 {
		limit = 5
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	candidates, err := m.searchLocal(ctx, query, limit, minScore)
	if err != nil {
		// Local search failure is always recoverable via the remote
		// fallback, never fatal.
		logger.Warn("local food search failed, falling back to remote", "query", query, "error", err)
	}
	if len(candidates) > 0 {
		return candidates
	}
	return m.searchRemote(ctx, query, limit)
}

func (m *MatcherService) searchLocal(ctx context.Context, query string, limit int, minScore float64) ([]MatchCandidate, error) {
	// The embedding is an upstream intent signal only; retrieval runs
	// over description substrings until a proper vector index lands.
	if m.embedder != nil {
		embedCtx, cancel := context.WithTimeout(ctx, matcherCallTimeout)
		if _, err := m.embedder.Embed(embedCtx, query); err != nil {
			logger.Debug("query embedding unavailable", "error", err)
		}
		cancel()
	}

	searchCtx, cancel := context.WithTimeout(ctx, matcherCallTimeout)
	defer cancel()
	records, err := m.repo.SearchByDescription(searchCtx, query, limit*2)
	if err != nil {
		return nil, err
	}

	candidates := make([]MatchCandidate, 0, len(records))
	for i := range records {
		if defaultLocalScore < minScore {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			Record: &records[i],
			Score:  defaultLocalScore,
		})
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	rerank(candidates, query)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// rerank orders candidates by data-type tier, then query-substring
// presence, then raw score. The substring-over-score order is a
// heuristic kept for compatibility with existing client expectations.
func rerank(candidates []MatchCandidate, query string) {
	q := strings.ToLower(query)
	sort.SliceStable(candidates, func(i, j int) bool {
		ri := rankFor(candidates[i].Record.DataTypeClass)
		rj := rankFor(candidates[j].Record.DataTypeClass)
		if ri != rj {
			return ri < rj
		}
		si := strings.Contains(strings.ToLower(candidates[i].Record.Description), q)
		sj := strings.Contains(strings.ToLower(candidates[j].Record.Description), q)
		if si != sj {
			return si
		}
		return candidates[i].Score > candidates[j].Score
	})
}

func rankFor(dataTypeClass string) int {
	if r, ok := dataTypeRank[dataTypeClass]; ok {
		return r
	}
	return len(dataTypeRank)
}

func (m *MatcherService) searchRemote(ctx context.Context, query string, limit int) []MatchCandidate {
	remoteCtx, cancel := context.WithTimeout(ctx, matcherCallTimeout)
	defer cancel()

	records, err := m.remote.SearchFoods(remoteCtx, query, limit)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			logger.Warn("usda rate limited, returning no candidates", "query", query)
		} else {
			logger.Warn("remote food search failed", "query", query, "error", err)
		}
		return nil
	}

	candidates := make([]MatchCandidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		if err := m.repo.Upsert(ctx, rec); err != nil {
			logger.Warn("failed to persist remote food record", "external_id", rec.ExternalID, "error", err)
		}
		candidates = append(candidates, MatchCandidate{Record: rec, Score: remoteMatchScore})
	}
	return candidates
}
