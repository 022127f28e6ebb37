package db

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"gorm.io/gorm"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := bookToModel(*book)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*book = bookFromModel(model)
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	book := bookFromModel(model)
	return &book, nil
}

func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Book, 0, len(models))
	for _, model := range models {
		out = append(out, bookFromModel(model))
	}
	return out, nil
}

func (r *BookRepository) Update(ctx context.Context, book domain.Book) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&BookModel{}).Where("id = ?", book.ID).Updates(map[string]any{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"isbn":             book.ISBN,
		"author":           book.Author,
		"category":         book.Category,
		"image_url":        book.ImageURL,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&BookModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func bookToModel(book domain.Book) BookModel {
	return BookModel{
		ID:              book.ID,
		Title:           book.Title,
		PublicationYear: book.PublicationYear,
		ISBN:            book.ISBN,
		Author:          book.Author,
		Category:        book.Category,
		ImageURL:        book.ImageURL,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

func bookFromModel(model BookModel) domain.Book {
	return domain.Book{
		ID:              model.ID,
		Title:           model.Title,
		PublicationYear: model.PublicationYear,
		ISBN:            model.ISBN,
		Author:          model.Author,
		Category:        model.Category,
		ImageURL:        model.ImageURL,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
