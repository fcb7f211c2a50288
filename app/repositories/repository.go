// Package repositories holds the gorm queries for each table. A repository
// built with WithTx runs every query on that transaction.
package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type base struct {
	tx *orm.Query
}

func (b base) q(ctx context.Context) *orm.Query {
	if b.tx != nil {
		return b.tx
	}
	return orm.DB(ctx)
}
