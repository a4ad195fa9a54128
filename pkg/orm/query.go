// Package orm is a thin, chainable wrapper over gorm that times every query
// for Prometheus and offers an optional read-through cache for list queries.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/acme/productstore/pkg/cache"
	"github.com/acme/productstore/pkg/metrics"
)

type Query struct {
	db *gorm.DB
}

// New wraps an explicit database handle. Repositories are constructed with
// this so they never depend on process-global state.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// Get runs the built query and scans all rows into dest.
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

// First scans the first matching row into dest.
// Returns gorm.ErrRecordNotFound when there is none.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts v as a new row; the store fills in its primary key.
func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

// Save writes all fields of v to its existing row and reports how many rows
// matched. It deliberately avoids gorm's Save, which falls back to inserting
// when the row is gone; a vanished row must surface as zero affected rows.
func (q *Query) Save(v interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	res := q.db.Model(v).Select("*").Updates(v)
	return res.RowsAffected, res.Error
}

// Delete removes the row matching v's primary key.
func (q *Query) Delete(v interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v).Error
}

// Cache answers the query from Redis when possible, otherwise runs it and
// stores the result under key for ttl. Degrades to a plain query when no
// cache connection is available.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.Get(dest); err != nil {
		return err
	}

	return cache.Set(key, dest, ttl)
}
