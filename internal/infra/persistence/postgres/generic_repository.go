package postgres

import (
	"context"
	"strings"

	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/errors"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// gormRepository implements repository.Repository for entity E stored as model M.
// Entity specific repositories embed it and add their own finders.
type gormRepository[M any, E any] struct {
	db   *gorm.DB
	name string // used in error messages

	// columns maps the filterable entity fields to table columns.
	columns map[string]string

	// preloads are associations loaded with every read.
	preloads []string

	// order is applied to ReadAll.
	order string

	toDomain   func(*M) *E
	fromDomain func(*E) *M

	// afterCreate copies database generated values back into the entity.
	afterCreate func(m *M, e *E)
}

// Exists reports whether any row matches the criteria.
func (r *gormRepository[M, E]) Exists(ctx context.Context, criteria repository.Criteria) (bool, error) {
	query, err := r.where(r.db.WithContext(ctx).Model(new(M)), criteria)
	if err != nil {
		return false, err
	}

	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check "+r.name+" existence")
	}

	return count > 0, nil
}

// Create inserts the entity and writes generated keys back into it.
func (r *gormRepository[M, E]) Create(ctx context.Context, entity *E) error {
	m := r.fromDomain(entity)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.translateWriteError(err, "create")
	}

	if r.afterCreate != nil {
		r.afterCreate(m, entity)
	}

	return nil
}

// Read returns the first row matching the criteria.
func (r *gormRepository[M, E]) Read(ctx context.Context, criteria repository.Criteria) (*E, error) {
	query, err := r.where(r.withPreloads(r.db.WithContext(ctx)), criteria)
	if err != nil {
		return nil, err
	}

	var m M
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read "+r.name)
	}

	return r.toDomain(&m), nil
}

// ReadAll returns every row matching the criteria.
func (r *gormRepository[M, E]) ReadAll(ctx context.Context, criteria repository.Criteria) ([]*E, error) {
	query, err := r.where(r.withPreloads(r.db.WithContext(ctx)), criteria)
	if err != nil {
		return nil, err
	}
	if r.order != "" {
		query = query.Order(r.order)
	}

	var models []*M
	if err := query.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list "+r.name)
	}

	entities := make([]*E, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.toDomain(m))
	}

	return entities, nil
}

// Update saves every column of the entity, keyed by its primary key.
func (r *gormRepository[M, E]) Update(ctx context.Context, entity *E) error {
	m := r.fromDomain(entity)

	result := r.db.WithContext(ctx).Model(m).Select("*").Omit("created_at").Updates(m)
	if result.Error != nil {
		return r.translateWriteError(result.Error, "update")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// Delete removes the rows matching the criteria. Empty criteria are refused
// by GORM rather than deleting the whole table.
func (r *gormRepository[M, E]) Delete(ctx context.Context, criteria repository.Criteria) (bool, error) {
	query, err := r.where(r.db.WithContext(ctx), criteria)
	if err != nil {
		return false, err
	}

	result := query.Delete(new(M))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete "+r.name)
	}

	return result.RowsAffected > 0, nil
}

func (r *gormRepository[M, E]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, assoc := range r.preloads {
		db = db.Preload(assoc)
	}

	return db
}

// where applies the criteria. Field names go through the column whitelist,
// so only values ever reach the statement as bind parameters.
func (r *gormRepository[M, E]) where(db *gorm.DB, criteria repository.Criteria) (*gorm.DB, error) {
	for _, clause := range criteria {
		column, ok := r.columns[clause.Field]
		if !ok {
			return nil, errors.Wrapf(repository.ErrUnknownField, "%s.%s", r.name, clause.Field)
		}

		switch clause.Op {
		case repository.OpEq:
			db = db.Where(column+" = ?", clause.Value)
		case repository.OpGte:
			db = db.Where(column+" >= ?", clause.Value)
		case repository.OpLte:
			db = db.Where(column+" <= ?", clause.Value)
		case repository.OpContains:
			term, _ := clause.Value.(string)
			db = db.Where(column+" ILIKE ?", "%"+likeEscaper.Replace(term)+"%")
		default:
			return nil, errors.Errorf("unsupported operator %q on %s.%s", clause.Op, r.name, clause.Field)
		}
	}

	return db, nil
}

func (r *gormRepository[M, E]) translateWriteError(err error, op string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrConflict.WithDetails(r.name).WrapMessage(op + " " + r.name)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("invalid reference").WrapMessage(op + " " + r.name)
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("missing or invalid field").WrapMessage(op + " " + r.name)
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to "+op+" "+r.name)
	}
}
