package services

import (
	"context"
	"errors"

	"github.com/MrazzKa/CalorieCam-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFoodNotFound = errors.New("food record not found")

// FoodRepository is the local nutrition-catalog query contract.
type FoodRepository interface {
	SearchByDescription(ctx context.Context, query string, limit int) ([]models.FoodRecord, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.FoodRecord, error)
	Upsert(ctx context.Context, record *models.FoodRecord) error
}

type GormFoodRepository struct {
	db *gorm.DB
}

func NewGormFoodRepository(db *gorm.DB) *GormFoodRepository {
	return &GormFoodRepository{db: db}
}

func (r *GormFoodRepository) SearchByDescription(ctx context.Context, query string, limit int) ([]models.FoodRecord, error) {
	var records []models.FoodRecord
	err := r.db.WithContext(ctx).
		Where("description ILIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *GormFoodRepository) FindByExternalID(ctx context.Context, externalID string) (*models.FoodRecord, error) {
	var record models.FoodRecord
	err := r.db.WithContext(ctx).
		Preload("Portions").
		Preload("NutrientEntries").
		Preload("LabelNutrients").
		Where("external_id = ?", externalID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes a record keyed by external id, replacing its portions,
// nutrient entries and label wholesale. Atomic, so two requests
// resolving the same unseen food concurrently are both safe.
func (r *GormFoodRepository) Upsert(ctx context.Context, record *models.FoodRecord) error {
	portions := record.Portions
	entries := record.NutrientEntries
	label := record.LabelNutrients
	record.Portions = nil
	record.NutrientEntries = nil
	record.LabelNutrients = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "data_type_class", "brand_owner",
				"scientific_name", "source", "updated_at",
			}),
		}).Create(record).Error; err != nil {
			return err
		}

		if err := tx.Where("food_record_id = ?", record.ID).Delete(&models.Portion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_record_id = ?", record.ID).Delete(&models.NutrientEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_record_id = ?", record.ID).Delete(&models.LabelNutrients{}).Error; err != nil {
			return err
		}

		for i := range portions {
			portions[i].ID = 0
			portions[i].FoodRecordID = record.ID
		}
		if len(portions) > 0 {
			if err := tx.Create(&portions).Error; err != nil {
				return err
			}
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].FoodRecordID = record.ID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		if label != nil {
			label.ID = 0
			label.FoodRecordID = record.ID
			if err := tx.Create(label).Error; err != nil {
				return err
			}
		}

		record.Portions = portions
		record.NutrientEntries = entries
		record.LabelNutrients = label
		return nil
	})
}
