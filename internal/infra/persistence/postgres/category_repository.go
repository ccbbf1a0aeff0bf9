package postgres

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/domain/repository"
	"manero/internal/errors"
	"manero/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	*gormRepository[model.CategoryModel, entity.Category]
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{
		gormRepository: &gormRepository[model.CategoryModel, entity.Category]{
			db:   db,
			name: "category",
			columns: map[string]string{
				repository.CategoryFieldID:   "id",
				repository.CategoryFieldName: "name",
			},
			order:      "id ASC",
			toDomain:   toCategoryDomain,
			fromDomain: fromCategoryDomain,
			afterCreate: func(m *model.CategoryModel, c *entity.Category) {
				c.ID = m.ID
			},
		},
	}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	return repo.readOne(ctx, repository.Where(repository.CategoryFieldID, id))
}

func (repo *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return repo.readOne(ctx, repository.Where(repository.CategoryFieldName, name))
}

func (repo *categoryRepository) SearchByName(ctx context.Context, term string) (*entity.Category, error) {
	categories, err := repo.ReadAll(ctx, repository.Criteria{}.Contains(repository.CategoryFieldName, term))
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, repository.ErrCategoryNotFound
	}

	return categories[0], nil
}

func (repo *categoryRepository) readOne(ctx context.Context, criteria repository.Criteria) (*entity.Category, error) {
	category, err := repo.Read(ctx, criteria)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, repository.ErrCategoryNotFound
	}

	return category, err
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:   data.ID,
		Name: data.Name,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:   data.ID,
		Name: data.Name,
	}
}
