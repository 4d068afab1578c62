package models

import "gorm.io/gorm"

// Data-type classes mirror the USDA FoodData Central tiers. The order
// here doubles as the match-ranking priority: branded label data beats
// foundation composition data, which beats survey and legacy entries.
const (
	DataTypeBranded    = "Branded"
	DataTypeFoundation = "Foundation"
	DataTypeSurvey     = "SurveyComposition"
	DataTypeLegacy     = "LegacyComposition"
)

// Where a record came from.
const (
	SourceLocal     = "local"
	SourceRemoteAPI = "usda_api"
)

// FoodRecord is one food in the local nutrition catalog, imported from
// USDA or upserted on the fly by the remote-fallback matcher. A record
// either carries LabelNutrients (per-serving, Branded style) or relies
// on its per-100g NutrientEntries.
type FoodRecord struct {
	gorm.Model
	ExternalID      string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description     string `gorm:"not null;index"`
	DataTypeClass   string `gorm:"type:varchar(32);index"`
	BrandOwner      string
	ScientificName  string
	Source          string          `gorm:"type:varchar(16)"`
	Portions        []Portion       `gorm:"constraint:OnDelete:CASCADE"`
	NutrientEntries []NutrientEntry `gorm:"constraint:OnDelete:CASCADE"`
	LabelNutrients  *LabelNutrients `gorm:"constraint:OnDelete:CASCADE"`
}

// Portion is a known discrete serving ("1 slice = 30g") used to snap an
// estimated gram weight to something realistic.
type Portion struct {
	gorm.Model
	FoodRecordID     uint `gorm:"index"`
	GramWeight       float64
	MeasureUnitLabel string
	Modifier         string
	Amount           float64
}

// NutrientEntry is one per-100g composition value keyed by the USDA
// nutrient-type id.
type NutrientEntry struct {
	gorm.Model
	FoodRecordID   uint `gorm:"index"`
	NutrientTypeID int  `gorm:"index"`
	Amount         float64
}

// LabelNutrients holds the on-label per-serving values of a Branded
// food. Presence of the row is what marks a record as label-based.
type LabelNutrients struct {
	gorm.Model
	FoodRecordID  uint `gorm:"uniqueIndex"`
	Calories      float64
	Protein       float64
	Fat           float64
	Carbohydrates float64
	Fiber         float64
	Sugars        float64
	Sodium        float64
}
