// Package xano is the request layer for the store's Xano backend: request
// construction, response normalization and one call per resource and verb.
package xano

import (
	"net/http"

	"github.com/MikeMC777/beyblade-store/internal/config"
	"github.com/MikeMC777/beyblade-store/internal/metrics"
)

type Client struct {
	HTTP      *http.Client
	AuthBase  string
	StoreBase string
	// Origin resolves a StoreBase that is only a mount point, e.g. "/api".
	Origin  string
	Metrics *metrics.ClientMetrics

	Products                 Resource[Product]
	Categories               Resource[Category]
	ProductCategoryRelations Resource[ProductCategoryRelation]
	Orders                   Resource[Order]
	OrderItems               Resource[OrderItem]
	Inventory                Resource[Inventory]
	Addresses                Resource[Address]
	Reviews                  Resource[Review]
}

// NewClient wires a client from configuration. The HTTP client has no
// timeout; callers bound a call through its context if they need to.
func NewClient(cfg config.Config, m *metrics.ClientMetrics) *Client {
	c := &Client{
		HTTP:      &http.Client{},
		AuthBase:  cfg.AuthBaseURL,
		StoreBase: cfg.StoreBase(),
		Origin:    cfg.StoreOrigin,
		Metrics:   m,
	}
	c.Products = newResource[Product](c, "/product")
	c.Categories = newResource[Category](c, "/product_category")
	c.ProductCategoryRelations = newResource[ProductCategoryRelation](c, "/product_category_relation")
	c.Orders = newResource[Order](c, "/order")
	c.OrderItems = newResource[OrderItem](c, "/order_item")
	c.Inventory = newResource[Inventory](c, "/inventory")
	c.Addresses = newResource[Address](c, "/address")
	c.Reviews = newResource[Review](c, "/review")
	return c
}
