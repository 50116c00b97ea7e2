// Package docs is generated by swag from the annotations in cmd/storefront.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/xano.AuthToken"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/xano.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.signupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/xano.AuthToken"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/xano.Category"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "category", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/xano.CategoryInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/xano.Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/categories/{id}": {
            "delete": {
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [
                    {"type": "integer", "description": "category id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/xano.Order"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "default": 12, "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "items to skip", "name": "offset", "in": "query"},
                    {"type": "string", "description": "search text", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/storefront.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product with images",
                "parameters": [
                    {"type": "string", "description": "name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "description", "name": "description", "in": "formData"},
                    {"type": "number", "description": "price", "name": "price", "in": "formData", "required": true},
                    {"type": "integer", "description": "stock quantity", "name": "stock", "in": "formData"},
                    {"type": "string", "description": "brand", "name": "brand", "in": "formData"},
                    {"type": "string", "description": "category", "name": "category", "in": "formData"},
                    {"type": "file", "description": "product images", "name": "images", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/xano.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        },
        "/v1/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "integer", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/xano.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "integer", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "main.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "main.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "main.signupRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "storefront.Page": {
            "type": "object",
            "properties": {
                "has_more": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/xano.Product"}},
                "limit": {"type": "integer"},
                "next_offset": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "xano.AuthToken": {
            "type": "object",
            "properties": {"authToken": {"type": "string"}}
        },
        "xano.Category": {
            "type": "object",
            "properties": {
                "category_type": {"type": "string"},
                "created_at": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "xano.CategoryInput": {
            "type": "object",
            "properties": {
                "category_type": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "xano.ImageResource": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "meta": {"type": "object", "additionalProperties": true},
                "mime": {"type": "string"},
                "name": {"type": "string"},
                "path": {"type": "string"},
                "size": {"type": "integer"},
                "type": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "xano.Order": {
            "type": "object",
            "properties": {
                "created_at": {"type": "integer"},
                "id": {"type": "integer"},
                "order_number": {"type": "string"},
                "payment_method": {"type": "string"},
                "payment_status": {"type": "string"},
                "shipping_address_id": {"type": "integer"},
                "status": {"type": "string"},
                "total_amount": {"type": "number"},
                "user_id": {"type": "integer"}
            }
        },
        "xano.Product": {
            "type": "object",
            "properties": {
                "brand": {"type": "string"},
                "category": {"type": "string"},
                "created_at": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "image_url": {"$ref": "#/definitions/xano.ImageResource"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/xano.ImageResource"}},
                "is_active": {"type": "boolean"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "release_year": {"type": "integer"},
                "series": {"type": "string"},
                "stock": {"type": "integer"},
                "stock_quantity": {"type": "integer"},
                "type": {"type": "string"},
                "weight": {"type": "number"}
            }
        },
        "xano.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "integer"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BeybladeStore gateway",
	Description:      "JSON gateway over the Xano-backed store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
