package xano

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListOptions carries the session token and any resource filters.
type ListOptions struct {
	Token string
	Query Query
}

// Resource is one store collection with uniform list/get/create/update/delete.
type Resource[T any] struct {
	c    *Client
	path string
}

func newResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, path: path}
}

func (r Resource[T]) Path() string { return r.path }

func (r Resource[T]) itemPath(id any) string {
	return r.path + "/" + url.PathEscape(fmt.Sprint(id))
}

// List returns the backend body verbatim: a bare array or an envelope.
func (r Resource[T]) List(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return r.c.Do(ctx, r.c.StoreBase, r.path, RequestOptions{Token: opts.Token, Query: opts.Query})
}

func (r Resource[T]) Get(ctx context.Context, id any, token string) (*T, error) {
	raw, err := r.c.Do(ctx, r.c.StoreBase, r.itemPath(id), RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

func (r Resource[T]) Create(ctx context.Context, token string, payload any) (*T, error) {
	raw, err := r.c.Do(ctx, r.c.StoreBase, r.path, RequestOptions{Method: http.MethodPost, Token: token, Body: payload})
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

// Update sends a PATCH; fields missing from payload are left as they are.
func (r Resource[T]) Update(ctx context.Context, token string, id any, payload any) (*T, error) {
	raw, err := r.c.Do(ctx, r.c.StoreBase, r.itemPath(id), RequestOptions{Method: http.MethodPatch, Token: token, Body: payload})
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

func (r Resource[T]) Delete(ctx context.Context, token string, id any) error {
	_, err := r.c.Do(ctx, r.c.StoreBase, r.itemPath(id), RequestOptions{Method: http.MethodDelete, Token: token})
	return err
}

// ProductListOptions are the product list filters. Nil filters are not sent.
type ProductListOptions struct {
	Token  string
	Limit  *int
	Offset *int
	Q      *string
}

func (c *Client) ListProducts(ctx context.Context, opts ProductListOptions) (json.RawMessage, error) {
	return c.Products.List(ctx, ListOptions{
		Token: opts.Token,
		Query: Query{{"limit", opts.Limit}, {"offset", opts.Offset}, {"q", opts.Q}},
	})
}

func (c *Client) GetProduct(ctx context.Context, id any, token string) (*Product, error) {
	return c.Products.Get(ctx, id, token)
}

func (c *Client) CreateProduct(ctx context.Context, token string, payload any) (*Product, error) {
	return c.Products.Create(ctx, token, payload)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id any, payload any) (*Product, error) {
	return c.Products.Update(ctx, token, id, payload)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id any) error {
	return c.Products.Delete(ctx, token, id)
}
