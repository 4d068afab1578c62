package services

import (
	"context"
	"errors"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"[{\"name\":\"rice\"}]", "[{\"name\":\"rice\"}]"},
		{"```json\n[{\"name\":\"rice\"}]\n```", "[{\"name\":\"rice\"}]"},
		{"```\n[]\n```", "[]"},
		{"  []  ", "[]"},
	}
	for _, c := range cases {
		if got := stripCodeFences(c.in); got != c.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

type flakyExtractor struct {
	err        error
	components []FoodComponent
	calls      int
}

func (f *flakyExtractor) ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.components, nil
}

func TestFallbackExtractorUsesNextOnError(t *testing.T) {
	primary := &flakyExtractor{err: errors.New("vision timeout")}
	backup := &flakyExtractor{components: []FoodComponent{{Name: "apple", Confidence: 0.9}}}
	f := NewFallbackExtractor(primary, backup)

	got, err := f.ExtractComponents(context.Background(), "https://example.com/a.jpg")
	if err != nil {
		t.Fatalf("ExtractComponents: %v", err)
	}
	if len(got) != 1 || got[0].Name != "apple" {
		t.Fatalf("components = %+v", got)
	}
	if primary.calls != 1 || backup.calls != 1 {
		t.Fatalf("call counts: primary %d backup %d", primary.calls, backup.calls)
	}
}

func TestFallbackExtractorAllFail(t *testing.T) {
	a := &flakyExtractor{err: errors.New("down")}
	b := &flakyExtractor{err: errors.New("also down")}
	f := NewFallbackExtractor(a, b)

	if _, err := f.ExtractComponents(context.Background(), "x"); err == nil {
		t.Fatal("expected an error when every extractor fails")
	}
}

func TestFallbackExtractorEmptySuccessStopsChain(t *testing.T) {
	// An empty list is a valid answer ("nothing detected"), not a
	// reason to try the next extractor.
	primary := &flakyExtractor{components: []FoodComponent{}}
	backup := &flakyExtractor{components: []FoodComponent{{Name: "ghost", Confidence: 0.9}}}
	f := NewFallbackExtractor(primary, backup)

	got, err := f.ExtractComponents(context.Background(), "x")
	if err != nil {
		t.Fatalf("ExtractComponents: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("components = %+v, want empty", got)
	}
	if backup.calls != 0 {
		t.Fatal("backup should not run after a successful extraction")
	}
}
