package services

import "github.com/MrazzKa/CalorieCam-sub001/models"

// FoodComponent is one food item pulled out of an image or text
// description before it is matched against the catalog.
type FoodComponent struct {
	Name                  string  `json:"name"`
	Preparation           string  `json:"preparation"`
	EstimatedPortionGrams float64 `json:"estimatedPortionGrams"`
	Confidence            float64 `json:"confidence"`
}

// The nutritional reference frame a record's numbers are expressed in.
const (
	BasisLabelPerServing    = "LabelPerServing"
	BasisCompositionPer100g = "CompositionPer100g"
)

// NutrientTuple is the canonical macro/calorie bundle. SatFat, Sodium
// and EnergyDensity are pointers because not every record reports them;
// they stay nil through scaling and only count as zero when totals are
// summed.
type NutrientTuple struct {
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbs         float64  `json:"carbs"`
	Fat           float64  `json:"fat"`
	Fiber         float64  `json:"fiber"`
	Sugars        float64  `json:"sugars"`
	SatFat        *float64 `json:"satFat,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"`
	EnergyDensity *float64 `json:"energyDensity,omitempty"`
}

// MatchCandidate is an ephemeral ranking result from the matcher.
type MatchCandidate struct {
	Record *models.FoodRecord `json:"record"`
	Score  float64            `json:"score"`
}

// AnalyzedItem is one resolved, scaled component of an analysis.
type AnalyzedItem struct {
	Name         string        `json:"name"`
	PortionGrams float64       `json:"portionGrams"`
	Nutrients    NutrientTuple `json:"nutrients"`
	Source       string        `json:"source"`
	BasisUsed    string        `json:"basisUsed"`
	MatchScore   float64       `json:"matchScore"`
	TraceInfo    string        `json:"traceInfo,omitempty"`
}

// NutrientTotals is the pointwise sum over all items plus the total
// gram weight.
type NutrientTotals struct {
	NutrientTuple
	PortionGrams float64 `json:"portionGrams"`
}

// ComponentTrace records what happened to one extracted component so a
// partial result is explainable.
type ComponentTrace struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "matched" | "no_match" | "error"
	Detail     string `json:"detail,omitempty"`
	Candidates int    `json:"candidates"`
}

type AnalysisDebug struct {
	RequestID  string           `json:"requestId"`
	Components []ComponentTrace `json:"components"`
}

// AnalysisResult is the immutable envelope one analysis request
// produces. Identical requests get the identical envelope back from
// the cache.
type AnalysisResult struct {
	Items        []AnalyzedItem     `json:"items"`
	Totals       NutrientTotals     `json:"totals"`
	HealthScore  *HealthScoreResult `json:"healthScore"`
	Debug        *AnalysisDebug     `json:"debug,omitempty"`
	IsSuspicious bool               `json:"isSuspicious,omitempty"`
}

type HealthScoreFactors struct {
	MacroBalance    float64 `json:"macroBalance"`
	CalorieDensity  float64 `json:"calorieDensity"`
	ProteinQuality  float64 `json:"proteinQuality"`
	ProcessingLevel float64 `json:"processingLevel"`
}

type Feedback struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

type HealthScoreResult struct {
	Score    int                `json:"score"`
	Grade    string             `json:"grade"`
	Factors  HealthScoreFactors `json:"factors"`
	Feedback []Feedback         `json:"feedback"`
}
