package repository

import (
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindAllWithQuestionCount(activeOnly bool) ([]QuizWithCount, error)
	Update(quiz *model.Quiz) error
	SetActive(id uint, active bool) error
	Delete(id uint) error
}

type QuizWithCount struct {
	model.Quiz
	QuestionCount int
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// Associated questions and options are created in the same insert.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.number ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.position ASC")
		}).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindAllWithQuestionCount(activeOnly bool) ([]QuizWithCount, error) {
	var results []QuizWithCount
	query := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id AND questions.deleted_at IS NULL) as question_count").
		Where("quizzes.deleted_at IS NULL").
		Order("quizzes.created_at DESC")
	if activeOnly {
		query = query.Where("quizzes.active = ?", true)
	}
	err := query.Scan(&results).Error
	return results, err
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *quizRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&model.Quiz{}).Where("id = ?", id).Update("active", active).Error
}

// Delete removes a quiz together with its questions, options and any attempts
// referencing it.
func (r *quizRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id IN (?)",
			tx.Model(&model.Attempt{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&model.AttemptAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id IN (?)",
			tx.Model(&model.Attempt{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&model.AttemptTeras{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}
