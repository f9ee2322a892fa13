// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package docs holds the swagger document served at /swagger. Regenerate
// with `swag init -g cmd/server/docs.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/marquee/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "List movies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Movie"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movies/seed": {
            "post": {
                "description": "Drops every movie and inserts the list. movieIds must be unique.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Seed the catalog",
                "parameters": [
                    {"description": "Movies", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.SeedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SeedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movies/download/{movieId}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["Movies"],
                "summary": "Download a movie",
                "parameters": [
                    {"type": "string", "description": "movieId or storage id", "name": "movieId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "302": {"description": "Redirect to downloadUrl", "schema": {"type": "string"}},
                    "404": {"description": "Movie not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "File missing", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movies/{movieId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Get a movie",
                "parameters": [
                    {"type": "string", "description": "movieId or storage id", "name": "movieId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movies/{movieId}/similar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Similar movies",
                "parameters": [
                    {"type": "string", "description": "movieId or storage id", "name": "movieId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Movie"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movies/{movieId}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "List embedded comments",
                "parameters": [
                    {"type": "string", "description": "movieId or storage id", "name": "movieId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "rating defaults to 0 when absent.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Add an embedded comment",
                "parameters": [
                    {"type": "string", "description": "movieId or storage id", "name": "movieId", "in": "path", "required": true},
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CommentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movieComments/{movieId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "List standalone comments",
                "parameters": [
                    {"type": "string", "description": "movieId", "name": "movieId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieComment"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/movieComments/add": {
            "post": {
                "description": "Every field, rating included, is required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Add a standalone comment",
                "parameters": [
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.MovieCommentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieComment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.SignupInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.AuthResponse"}},
                    "400": {"description": "Invalid input or username exists", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AuthResponse"}},
                    "400": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/{identifier}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "string", "description": "username or storage id", "name": "identifier", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update a profile",
                "parameters": [
                    {"type": "string", "description": "storage id or username", "name": "identifier", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.ProfilePatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Username already taken", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/{identifier}/favorites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "List favorites",
                "parameters": [
                    {"type": "string", "description": "username", "name": "identifier", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Toggle a favorite",
                "parameters": [
                    {"type": "string", "description": "username", "name": "identifier", "in": "path", "required": true},
                    {"description": "Movie and remove flag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.FavoriteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}}},
                    "400": {"description": "movie.id required", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/{identifier}/recentlyViewed": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "List recently viewed",
                "parameters": [
                    {"type": "string", "description": "username", "name": "identifier", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Push recently viewed",
                "parameters": [
                    {"type": "string", "description": "username", "name": "identifier", "in": "path", "required": true},
                    {"description": "Movie", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RecentlyViewedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}}},
                    "400": {"description": "movie.id required", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Streams {type, data} messages for every domain event.",
                "tags": ["Realtime"],
                "summary": "Activity feed",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}},
                    "403": {"description": "Origin not allowed", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "accounts.ProfilePatch": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "phone": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "accounts.SignupInput": {
            "type": "object",
            "required": ["email", "name", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "maxLength": 72},
                "phone": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "api.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "api.FavoriteRequest": {
            "type": "object",
            "properties": {
                "movie": {"$ref": "#/definitions/models.MovieRef"},
                "remove": {"type": "boolean"}
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "api.RecentlyViewedRequest": {
            "type": "object",
            "properties": {
                "movie": {"$ref": "#/definitions/models.MovieRef"}
            }
        },
        "api.SeedResponse": {
            "type": "object",
            "properties": {
                "inserted": {"type": "integer"},
                "ok": {"type": "boolean"}
            }
        },
        "catalog.CommentInput": {
            "type": "object",
            "required": ["comment", "username"],
            "properties": {
                "comment": {"type": "string"},
                "rating": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "catalog.MovieCommentInput": {
            "type": "object",
            "required": ["comment", "movieId", "rating", "username"],
            "properties": {
                "comment": {"type": "string"},
                "movieId": {"type": "string"},
                "rating": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "catalog.SeedRequest": {
            "type": "object",
            "properties": {
                "list": {"type": "array", "items": {"$ref": "#/definitions/models.Movie"}}
            }
        },
        "models.Comment": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "comment": {"type": "string"},
                "createdAt": {"type": "string"},
                "rating": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "models.Movie": {
            "type": "object",
            "required": ["movieId", "name"],
            "properties": {
                "_id": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}},
                "description": {"type": "string"},
                "downloadUrl": {"type": "string"},
                "genre": {"type": "string"},
                "img": {"type": "string"},
                "movieId": {"type": "string"},
                "name": {"type": "string"},
                "trailer": {"type": "string"}
            }
        },
        "models.MovieComment": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "comment": {"type": "string"},
                "createdAt": {"type": "string"},
                "movieId": {"type": "string"},
                "rating": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "models.MovieRef": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "img": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"},
                "favorites": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "recentlyViewed": {"type": "array", "items": {"$ref": "#/definitions/models.MovieRef"}},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Marquee API",
	Description:      "Movie catalog with comments, user accounts, favorites and an activity feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
