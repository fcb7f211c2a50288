// Package graphql exposes the product catalogue as a read-only GraphQL
// schema backed by the same service as the REST endpoints.
package graphql

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"seller":        &graphql.Field{Type: graphql.Int},
		"name":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.String, Description: "Two-place decimal string."},
		"stockQuantity": &graphql.Field{Type: graphql.Int},
		"category":      &graphql.Field{Type: graphql.String},
		"brand":         &graphql.Field{Type: graphql.String},
		"imageUrl":      &graphql.Field{Type: graphql.String},
		"videoUrl":      &graphql.Field{Type: graphql.String},
		"isFeatured":    &graphql.Field{Type: graphql.Boolean},
		"isPopular":     &graphql.Field{Type: graphql.Boolean},
		"createdAt":     &graphql.Field{Type: graphql.DateTime},
	},
})

func productFields(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID.String(),
		"seller":        int(p.SellerID),
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price.StringFixed(2),
		"stockQuantity": p.StockQuantity,
		"category":      p.Category,
		"brand":         p.Brand,
		"imageUrl":      p.ImageURL,
		"videoUrl":      p.VideoURL,
		"isFeatured":    p.IsFeatured,
		"isPopular":     p.IsPopular,
		"createdAt":     p.CreatedAt,
	}
}

// NewSchema builds the catalogue schema over svc.
func NewSchema(svc *services.ProductService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"featured": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"ordering": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f := repositories.ProductFilter{}
					f.Category, _ = p.Args["category"].(string)
					f.Brand, _ = p.Args["brand"].(string)
					f.Search, _ = p.Args["search"].(string)
					f.Ordering, _ = p.Args["ordering"].(string)
					if b, ok := p.Args["featured"].(bool); ok {
						f.Featured = &b
					}

					list, err := svc.List(p.Context, f)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(list))
					for i, prod := range list {
						out[i] = productFields(prod)
					}
					return out, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["id"].(string)
					id, err := uuid.Parse(raw)
					if err != nil {
						return nil, fmt.Errorf("invalid product id %q", raw)
					}
					prod, err := svc.Get(p.Context, id)
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return productFields(prod), nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}
