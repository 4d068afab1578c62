package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MrazzKa/CalorieCam-sub001/models"
)

type fakeFoodRepo struct {
	searchResults []models.FoodRecord
	searchErr     error
	records       map[string]*models.FoodRecord
	findErr       error
	upserted      []string
}

func (f *fakeFoodRepo) SearchByDescription(ctx context.Context, query string, limit int) ([]models.FoodRecord, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.searchResults) > limit {
		return f.searchResults[:limit], nil
	}
	return f.searchResults, nil
}

func (f *fakeFoodRepo) FindByExternalID(ctx context.Context, externalID string) (*models.FoodRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if rec, ok := f.records[externalID]; ok {
		return rec, nil
	}
	return nil, ErrFoodNotFound
}

func (f *fakeFoodRepo) Upsert(ctx context.Context, record *models.FoodRecord) error {
	f.upserted = append(f.upserted, record.ExternalID)
	return nil
}

type fakeRemoteAPI struct {
	results []models.FoodRecord
	err     error
	calls   int
}

func (f *fakeRemoteAPI) SearchFoods(ctx context.Context, query string, pageSize int) ([]models.FoodRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeRemoteAPI) GetFood(ctx context.Context, externalID string) (*models.FoodRecord, error) {
	return nil, ErrFoodNotFound
}

func foodRec(externalID, description, dataType string) models.FoodRecord {
	return models.FoodRecord{
		ExternalID:    externalID,
		Description:   description,
		DataTypeClass: dataType,
		Source:        models.SourceLocal,
	}
}

func TestFindByTextLocalHit(t *testing.T) {
	repo := &fakeFoodRepo{
		searchResults: []models.FoodRecord{foodRec("1", "chicken breast", models.DataTypeFoundation)},
	}
	m := NewMatcherService(repo, nil, &fakeRemoteAPI{})

	got := m.FindByText(context.Background(), "chicken", 3, 0.5)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if got[0].Score != defaultLocalScore {
		t.Fatalf("score = %v, want %v", got[0].Score, defaultLocalScore)
	}
}

func TestFindByTextMinScoreFiltersLocal(t *testing.T) {
	repo := &fakeFoodRepo{
		searchResults: []models.FoodRecord{foodRec("1", "chicken breast", models.DataTypeFoundation)},
	}
	remote := &fakeRemoteAPI{
		results: []models.FoodRecord{foodRec("r1", "chicken, broilers", models.DataTypeLegacy)},
	}
	m := NewMatcherService(repo, nil, remote)

	// 0.7 threshold excludes every flat-scored local hit.
	got := m.FindByText(context.Background(), "chicken", 3, 0.7)
	if remote.calls != 1 {
		t.Fatalf("remote calls = %d, want fallback", remote.calls)
	}
	if len(got) != 1 || got[0].Score != remoteMatchScore {
		t.Fatalf("unexpected remote candidates: %+v", got)
	}
}

func TestFindByTextRerankOrder(t *testing.T) {
	repo := &fakeFoodRepo{
		searchResults: []models.FoodRecord{
			foodRec("leg", "chicken, roasted", models.DataTypeLegacy),
			foodRec("srv", "chicken nuggets", models.DataTypeSurvey),
			foodRec("brd", "CHICKEN STRIPS", models.DataTypeBranded),
			foodRec("fnd", "chicken, broiler", models.DataTypeFoundation),
		},
	}
	m := NewMatcherService(repo, nil, &fakeRemoteAPI{})

	got := m.FindByText(context.Background(), "chicken", 4, 0.5)
	if len(got) != 4 {
		t.Fatalf("candidates = %d, want 4", len(got))
	}
	wantOrder := []string{"brd", "fnd", "srv", "leg"}
	for i, want := range wantOrder {
		if got[i].Record.ExternalID != want {
			t.Fatalf("position %d = %s, want %s", i, got[i].Record.ExternalID, want)
		}
	}
}

func TestFindByTextSubstringBeforeScoreWithinTier(t *testing.T) {
	repo := &fakeFoodRepo{
		searchResults: []models.FoodRecord{
			foodRec("a", "poultry mix", models.DataTypeFoundation),
			foodRec("b", "grilled chicken", models.DataTypeFoundation),
		},
	}
	m := NewMatcherService(repo, nil, &fakeRemoteAPI{})

	got := m.FindByText(context.Background(), "chicken", 2, 0.5)
	if len(got) != 2 || got[0].Record.ExternalID != "b" {
		t.Fatalf("substring match should lead its tier: %+v", got)
	}
}

func TestFindByTextLocalErrorFallsBackToRemote(t *testing.T) {
	repo := &fakeFoodRepo{searchErr: errors.New("db down")}
	remote := &fakeRemoteAPI{
		results: []models.FoodRecord{foodRec("r1", "banana, raw", models.DataTypeLegacy)},
	}
	m := NewMatcherService(repo, nil, remote)

	got := m.FindByText(context.Background(), "banana", 3, 0.5)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1 from remote", len(got))
	}
	if got[0].Score != remoteMatchScore {
		t.Fatalf("score = %v, want %v", got[0].Score, remoteMatchScore)
	}
	if len(repo.upserted) != 1 || repo.upserted[0] != "r1" {
		t.Fatalf("remote hit not persisted: %v", repo.upserted)
	}
}

func TestFindByTextRateLimitedReturnsEmpty(t *testing.T) {
	repo := &fakeFoodRepo{}
	remote := &fakeRemoteAPI{err: ErrRateLimited}
	m := NewMatcherService(repo, nil, remote)

	got := m.FindByText(context.Background(), "banana", 3, 0.5)
	if len(got) != 0 {
		t.Fatalf("rate-limited search must yield no candidates, got %d", len(got))
	}
}

func TestFindByTextEmptyQuery(t *testing.T) {
	m := NewMatcherService(&fakeFoodRepo{}, nil, &fakeRemoteAPI{})
	if got := m.FindByText(context.Background(), "   ", 3, 0.5); got != nil {
		t.Fatalf("blank query should short-circuit, got %+v", got)
	}
}
