package repository

import (
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	Update(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithDetails(id uint) (*model.Attempt, error)
	FindAllByUser(userID uint) ([]model.Attempt, error)
	FindAllByQuizAndUser(quizID, userID uint) ([]model.Attempt, error)
	DeleteAllByUser(userID uint) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	// Answer and per-Teras rows ride along in the same insert.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Quiz").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_answers.question_number ASC")
		}).
		Preload("TerasScores").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("user_id = ?", userID).
		Preload("Quiz").
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAllByQuizAndUser(quizID, userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// DeleteAllByUser is the bulk history clear.
func (r *attemptRepository) DeleteAllByUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&model.Attempt{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("attempt_id IN (?)", ids).Delete(&model.AttemptAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id IN (?)", ids).Delete(&model.AttemptTeras{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.Attempt{}).Error
	})
}
