// Package orm is a thin, chainable wrapper over gorm used by the
// repositories. Every chain starts from DB(ctx) so the request context
// reaches the driver.
package orm

import (
	"context"
	"errors"
	"math"

	"github.com/shashiranjanraj/storefront/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

type Query struct {
	db *gorm.DB
}

// DB starts a query against the package-level connection.
func DB(ctx context.Context) *Query {
	return &Query{db: database.DB.WithContext(ctx)}
}

// Transaction runs fn inside a database transaction. A non-nil error from
// fn rolls everything back.
func Transaction(ctx context.Context, fn func(tx *Query) error) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Scopes(fns ...func(*gorm.DB) *gorm.DB) *Query {
	return &Query{db: q.db.Scopes(fns...)}
}

// Omit skips columns or associations (clause.Associations) on write.
func (q *Query) Omit(columns ...string) *Query {
	return &Query{db: q.db.Omit(columns...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Exists reports whether at least one row matches.
func (q *Query) Exists() (bool, error) {
	n, err := q.Count()
	return n > 0, err
}

// Pluck loads a single column into dest.
func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// CreateWithoutAssociations inserts v without upserting any related rows.
func (q *Query) CreateWithoutAssociations(v interface{}) error {
	return q.db.Omit(clause.Associations).Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Omit(clause.Associations).Save(v).Error
}

// Updates applies column changes to the model selected by Model.
func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// IsNotFound reports whether err means "no row".
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Pagination is the metadata returned next to a paginated page.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// GetWithPagination counts the matching rows and loads one page into dest.
// page is 1-based; limit is clamped to [1, 100].
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Total:       total,
		PerPage:     limit,
		CurrentPage: page,
		LastPage:    int(math.Max(1, math.Ceil(float64(total)/float64(limit)))),
	}, nil
}
