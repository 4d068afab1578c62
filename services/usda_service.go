package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/models"
)

// ErrRateLimited marks a provider 429. Within a request it is not
// retriable; the matcher treats it like "nothing found".
var ErrRateLimited = errors.New("usda: rate limited")

// NutritionAPI is the remote nutrition database contract.
type NutritionAPI interface {
	SearchFoods(ctx context.Context, query string, pageSize int) ([]models.FoodRecord, error)
	GetFood(ctx context.Context, externalID string) (*models.FoodRecord, error)
}

// USDAService talks to the FoodData Central REST API.
type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewUSDAService() *USDAService {
	return &USDAService{
		apiKey:  config.GetEnv("USDA_API_KEY", "DEMO_KEY"),
		baseURL: config.GetEnv("USDA_BASE_URL", "https://api.nal.usda.gov/fdc/v1"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type fdcNutrient struct {
	NutrientID int     `json:"nutrientId"`
	Value      float64 `json:"value"`
}

type fdcLabelValue struct {
	Value float64 `json:"value"`
}

type fdcLabelNutrients struct {
	Calories      *fdcLabelValue `json:"calories"`
	Protein       *fdcLabelValue `json:"protein"`
	Fat           *fdcLabelValue `json:"fat"`
	Carbohydrates *fdcLabelValue `json:"carbohydrates"`
	Fiber         *fdcLabelValue `json:"fiber"`
	Sugars        *fdcLabelValue `json:"sugars"`
	Sodium        *fdcLabelValue `json:"sodium"`
}

type fdcPortion struct {
	GramWeight  float64 `json:"gramWeight"`
	Modifier    string  `json:"modifier"`
	Amount      float64 `json:"amount"`
	MeasureUnit struct {
		Name string `json:"name"`
	} `json:"measureUnit"`
}

type fdcFood struct {
	FdcID          int64              `json:"fdcId"`
	Description    string             `json:"description"`
	DataType       string             `json:"dataType"`
	BrandOwner     string             `json:"brandOwner"`
	ScientificName string             `json:"scientificName"`
	FoodNutrients  []fdcNutrient      `json:"foodNutrients"`
	LabelNutrients *fdcLabelNutrients `json:"labelNutrients"`
	FoodPortions   []fdcPortion       `json:"foodPortions"`
}

type fdcSearchResponse struct {
	Foods []fdcFood `json:"foods"`
}

func (s *USDAService) SearchFoods(ctx context.Context, query string, pageSize int) ([]models.FoodRecord, error) {
	if pageSize <= 0 {
		pageSize = 5
	}
	u := fmt.Sprintf("%s/foods/search?query=%s&pageSize=%d&api_key=%s",
		s.baseURL, url.QueryEscape(query), pageSize, s.apiKey)

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var sr fdcSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA search JSON: %w", err)
	}

	records := make([]models.FoodRecord, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		records = append(records, mapFdcFood(f))
	}
	return records, nil
}

func (s *USDAService) GetFood(ctx context.Context, externalID string) (*models.FoodRecord, error) {
	u := fmt.Sprintf("%s/food/%s?api_key=%s", s.baseURL, url.PathEscape(externalID), s.apiKey)

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var f fdcFood
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to parse USDA food JSON: %w", err)
	}
	rec := mapFdcFood(f)
	return &rec, nil
}

func (s *USDAService) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create USDA request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func mapFdcFood(f fdcFood) models.FoodRecord {
	rec := models.FoodRecord{
		ExternalID:     strconv.FormatInt(f.FdcID, 10),
		Description:    f.Description,
		DataTypeClass:  mapDataType(f.DataType),
		BrandOwner:     f.BrandOwner,
		ScientificName: f.ScientificName,
		Source:         models.SourceRemoteAPI,
	}

	for _, n := range f.FoodNutrients {
		if n.NutrientID == 0 {
			continue
		}
		rec.NutrientEntries = append(rec.NutrientEntries, models.NutrientEntry{
			NutrientTypeID: n.NutrientID,
			Amount:         n.Value,
		})
	}

	for _, p := range f.FoodPortions {
		if p.GramWeight <= 0 {
			continue
		}
		rec.Portions = append(rec.Portions, models.Portion{
			GramWeight:       p.GramWeight,
			MeasureUnitLabel: p.MeasureUnit.Name,
			Modifier:         p.Modifier,
			Amount:           p.Amount,
		})
	}

	if f.LabelNutrients != nil {
		rec.LabelNutrients = &models.LabelNutrients{
			Calories:      labelValue(f.LabelNutrients.Calories),
			Protein:       labelValue(f.LabelNutrients.Protein),
			Fat:           labelValue(f.LabelNutrients.Fat),
			Carbohydrates: labelValue(f.LabelNutrients.Carbohydrates),
			Fiber:         labelValue(f.LabelNutrients.Fiber),
			Sugars:        labelValue(f.LabelNutrients.Sugars),
			Sodium:        labelValue(f.LabelNutrients.Sodium),
		}
	}
	return rec
}

func labelValue(v *fdcLabelValue) float64 {
	if v == nil {
		return 0
	}
	return v.Value
}

func mapDataType(dt string) string {
	switch dt {
	case "Branded":
		return models.DataTypeBranded
	case "Foundation":
		return models.DataTypeFoundation
	case "Survey (FNDDS)":
		return models.DataTypeSurvey
	case "SR Legacy":
		return models.DataTypeLegacy
	default:
		return models.DataTypeLegacy
	}
}
