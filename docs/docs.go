// Package docs registers the OpenAPI document of the movies rental api.
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
        "/filmes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "List movies",
                "parameters": [
                    {"type": "string", "description": "case-insensitive term matched against title or director", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Movie"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Create a movie",
                "parameters": [
                    {"description": "movie to create", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/filmes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Get a movie",
                "parameters": [
                    {"type": "string", "description": "movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Update a movie",
                "parameters": [
                    {"type": "string", "description": "movie id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to overwrite", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Delete a movie",
                "parameters": [
                    {"type": "string", "description": "movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/filmes/alugar/{id}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Rent a movie",
                "parameters": [
                    {"type": "string", "description": "movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/filmes/devolver/{id}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["filmes"],
                "summary": "Return a movie",
                "parameters": [
                    {"type": "string", "description": "movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "director": {"type": "string"},
                "year": {"type": "integer"},
                "available": {"type": "boolean"}
            }
        },
        "CreateMovieRequest": {
            "type": "object",
            "required": ["title", "director", "year"],
            "properties": {
                "title": {"type": "string"},
                "director": {"type": "string"},
                "year": {"type": "integer"}
            }
        },
        "MovieUpdate": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "director": {"type": "string"},
                "year": {"type": "integer"},
                "available": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "requestid": {"type": "string"},
                "status": {"type": "integer"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "requestid": {"type": "string"},
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Locadora movies rental API",
	Description:      "Catalog of movies available for rental.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
