package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/beyblade-store/internal/storefront"
	"github.com/MikeMC777/beyblade-store/internal/xano"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// fail answers with the backend's status when there is one, 502 otherwise.
func fail(c *gin.Context, err error) {
	status := xano.StatusOf(err)
	switch {
	case errors.Is(err, storefront.ErrLoginRequired):
		status = http.StatusUnauthorized
	case status == 0:
		status = http.StatusBadGateway
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// listProductsHandler godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Param    limit   query int    false "page size" default(12)
// @Param    offset  query int    false "items to skip" default(0)
// @Param    q       query string false "search text"
// @Success  200 {object} storefront.Page
// @Failure  400 {object} errorResponse
// @Failure  502 {object} errorResponse
// @Router   /v1/products [get]
func listProductsHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit, ok := intQuery(ctx, "limit", storefront.PageSize)
		if !ok {
			badRequest(ctx, "invalid limit")
			return
		}
		offset, ok := intQuery(ctx, "offset", 0)
		if !ok {
			badRequest(ctx, "invalid offset")
			return
		}
		page, err := storefront.FetchPage(ctx.Request.Context(), c, bearer(ctx), limit, offset, ctx.Query("q"))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, page)
	}
}

// getProductHandler godoc
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id path int true "product id"
// @Success  200 {object} xano.Product
// @Failure  404 {object} errorResponse
// @Router   /v1/products/{id} [get]
func getProductHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, err := c.GetProduct(ctx.Request.Context(), ctx.Param("id"), bearer(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		if p == nil {
			ctx.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
			return
		}
		ctx.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary  Create a product with images
// @Tags     products
// @Accept   multipart/form-data
// @Produce  json
// @Param    name        formData string true  "name"
// @Param    description formData string false "description"
// @Param    price       formData number true  "price"
// @Param    stock       formData int    false "stock quantity"
// @Param    brand       formData string false "brand"
// @Param    category    formData string false "category"
// @Param    images      formData file   false "product images"
// @Success  201 {object} xano.Product
// @Failure  400 {object} errorResponse
// @Failure  401 {object} errorResponse
// @Router   /v1/products [post]
func createProductHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		in := xano.ProductInput{
			Name:        strings.TrimSpace(ctx.PostForm("name")),
			Description: ctx.PostForm("description"),
			Brand:       ctx.PostForm("brand"),
			Category:    ctx.PostForm("category"),
		}
		if in.Name == "" {
			badRequest(ctx, "name is required")
			return
		}
		price, err := decimal.NewFromString(ctx.PostForm("price"))
		if err != nil || price.IsNegative() {
			badRequest(ctx, "invalid price")
			return
		}
		in.Price = xano.Money{Decimal: price}
		if s := ctx.PostForm("stock"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				badRequest(ctx, "invalid stock")
				return
			}
			in.StockQuantity = &n
		}

		var files []xano.File
		if form, err := ctx.MultipartForm(); err == nil {
			for _, fh := range form.File["images"] {
				f, err := fh.Open()
				if err != nil {
					badRequest(ctx, "unreadable image "+fh.Filename)
					return
				}
				defer f.Close()
				files = append(files, xano.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Content: f})
			}
		}

		p, err := storefront.CreateProductWithImages(ctx.Request.Context(), c, bearer(ctx), in, files)
		if err != nil {
			if p != nil {
				// created, but the images did not make it
				ctx.JSON(http.StatusMultiStatus, gin.H{"product": p, "error": err.Error()})
				return
			}
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, p)
	}
}

// deleteProductHandler godoc
// @Summary  Delete a product
// @Tags     products
// @Param    id path int true "product id"
// @Success  204
// @Failure  404 {object} errorResponse
// @Router   /v1/products/{id} [delete]
func deleteProductHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DeleteProduct(ctx.Request.Context(), bearer(ctx), ctx.Param("id")); err != nil {
			fail(ctx, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}

// listCategoriesHandler godoc
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200 {array} xano.Category
// @Router   /v1/categories [get]
func listCategoriesHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cats, err := storefront.Categories(ctx.Request.Context(), c.Categories, bearer(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, cats)
	}
}

// createCategoryHandler godoc
// @Summary  Create a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Param    body body xano.CategoryInput true "category"
// @Success  201 {object} xano.Category
// @Failure  400 {object} errorResponse
// @Router   /v1/categories [post]
func createCategoryHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var in xano.CategoryInput
		if err := ctx.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
			badRequest(ctx, "name is required")
			return
		}
		cat, err := c.Categories.Create(ctx.Request.Context(), bearer(ctx), in)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, cat)
	}
}

// deleteCategoryHandler godoc
// @Summary  Delete a category
// @Tags     categories
// @Param    id path int true "category id"
// @Success  204
// @Router   /v1/categories/{id} [delete]
func deleteCategoryHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Categories.Delete(ctx.Request.Context(), bearer(ctx), ctx.Param("id")); err != nil {
			fail(ctx, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}

// listOrdersHandler godoc
// @Summary  List the caller's orders
// @Tags     orders
// @Produce  json
// @Success  200 {array} xano.Order
// @Failure  401 {object} errorResponse
// @Router   /v1/orders [get]
func listOrdersHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orders, err := storefront.Orders(ctx.Request.Context(), c.Orders, bearer(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, orders)
	}
}

// loginHandler godoc
// @Summary  Log in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} xano.AuthToken
// @Failure  401 {object} errorResponse
// @Router   /v1/auth/login [post]
func loginHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var in loginRequest
		if err := ctx.ShouldBindJSON(&in); err != nil {
			badRequest(ctx, "email and password are required")
			return
		}
		tok, err := c.Login(ctx.Request.Context(), in.Email, in.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, tok)
	}
}

// signupHandler godoc
// @Summary  Sign up
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body signupRequest true "account"
// @Success  200 {object} xano.AuthToken
// @Failure  400 {object} errorResponse
// @Router   /v1/auth/signup [post]
func signupHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var in signupRequest
		if err := ctx.ShouldBindJSON(&in); err != nil {
			badRequest(ctx, "name, email and password are required")
			return
		}
		tok, err := c.Signup(ctx.Request.Context(), in.Name, in.Email, in.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, tok)
	}
}

// meHandler godoc
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Success  200 {object} xano.User
// @Failure  401 {object} errorResponse
// @Router   /v1/auth/me [get]
func meHandler(c *xano.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tok := bearer(ctx)
		if tok == "" {
			fail(ctx, storefront.ErrLoginRequired)
			return
		}
		u, err := c.Me(ctx.Request.Context(), tok)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, u)
	}
}
