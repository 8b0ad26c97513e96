package repository

import (
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(txn *model.Transaction) error
	Update(txn *model.Transaction) error
	FindByReference(reference string) (*model.Transaction, error)
	FindAll() ([]model.Transaction, error)
	FindAllByUser(userID uint) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *model.Transaction) error {
	return r.db.Create(txn).Error
}

func (r *transactionRepository) Update(txn *model.Transaction) error {
	return r.db.Save(txn).Error
}

func (r *transactionRepository) FindByReference(reference string) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.Where("reference = ?", reference).First(&txn).Error
	return &txn, err
}

func (r *transactionRepository) FindAll() ([]model.Transaction, error) {
	var txns []model.Transaction
	err := r.db.Preload("User").Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) FindAllByUser(userID uint) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}
