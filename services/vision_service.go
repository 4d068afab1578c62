package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrazzKa/CalorieCam-sub001/logger"
)

// Components below this confidence are dropped before matching.
const componentConfidenceFloor = 0.55

// VisionExtractor turns an image into structured food component
// guesses. Implementations return an error only on total extraction
// failure; a response that parses to nothing yields an empty list.
type VisionExtractor interface {
	ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error)
}

const visionSystemPrompt = "You are a nutrition assistant. Identify every distinct food item in the photo."

const visionUserPrompt = `List the food items visible in this image.

Return ONLY a JSON array, one object per item:
[{"name": "...", "preparation": "...", "estimated_portion_grams": 150, "confidence": 0.9}]

"preparation" is how it was cooked (grilled, fried, raw, ...), empty if unknown.
"confidence" is your certainty between 0 and 1.`

// OpenAIVisionService extracts components with a multimodal chat call.
type OpenAIVisionService struct {
	llm *LLMClient
}

func NewOpenAIVisionService(llm *LLMClient) *OpenAIVisionService {
	return &OpenAIVisionService{llm: llm}
}

func (s *OpenAIVisionService) ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error) {
	messages := []ChatMessage{
		{Role: "system", Content: visionSystemPrompt},
		{Role: "user", Content: []ContentPart{
			{Type: "text", Text: visionUserPrompt},
			{Type: "image_url", ImageURL: &ImageURLPart{URL: imageURL}},
		}},
	}

	resp, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("vision extraction failed: %w", err)
	}

	var raw []struct {
		Name                  string  `json:"name"`
		Preparation           string  `json:"preparation"`
		EstimatedPortionGrams float64 `json:"estimated_portion_grams"`
		Confidence            float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(resp)), &raw); err != nil {
		// The model answered but not in the shape we asked for. Not
		// fatal: the caller surfaces a "nothing detected" outcome.
		logger.Warn("unparseable vision response", "error", err)
		return []FoodComponent{}, nil
	}

	components := make([]FoodComponent, 0, len(raw))
	for _, r := range raw {
		if r.Confidence < componentConfidenceFloor || strings.TrimSpace(r.Name) == "" {
			continue
		}
		components = append(components, FoodComponent{
			Name:                  strings.TrimSpace(r.Name),
			Preparation:           strings.TrimSpace(r.Preparation),
			EstimatedPortionGrams: r.EstimatedPortionGrams,
			Confidence:            r.Confidence,
		})
	}
	return components, nil
}

// stripCodeFences removes a markdown ```json wrapper some models insist
// on adding.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// FallbackExtractor tries each extractor in order and returns the first
// successful extraction. Only when every extractor fails does the
// request fail.
type FallbackExtractor struct {
	chain []VisionExtractor
}

func NewFallbackExtractor(chain ...VisionExtractor) *FallbackExtractor {
	return &FallbackExtractor{chain: chain}
}

func (f *FallbackExtractor) ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error) {
	var lastErr error
	for _, ex := range f.chain {
		components, err := ex.ExtractComponents(ctx, imageURL)
		if err == nil {
			return components, nil
		}
		lastErr = err
		logger.Warn("vision extractor failed, trying next", "error", err)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no vision extractors configured")
	}
	return nil, lastErr
}
