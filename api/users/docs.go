// Package users registers the OpenAPI description of the user directory
// service with swaggo so the /swagger/ UI can render it. Regenerate with
// `swag init -g internal/users/http/router.go -o api/users` after changing
// handler annotations.
package users

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/users": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List all users",
                "description": "Returns every user with its role names. Requires the TESTER authority.",
                "responses": {
                    "200": {"description": "List of users", "schema": {"$ref": "#/definitions/userapi.ListUsersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create a user",
                "description": "Provisions a new enabled user with a single role. Requires the ADMIN authority.",
                "parameters": [
                    {
                        "description": "User to create",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/userapi.CreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created user", "schema": {"$ref": "#/definitions/userapi.User"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Fetch a user by ID",
                "description": "Returns the user with the given identifier. Requires the ADMIN authority.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User identifier (ULID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "The user", "schema": {"$ref": "#/definitions/userapi.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/userapi.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/userapi.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/userapi.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/userapi.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "userapi.CreateUserRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "userapi.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "enabled": {"type": "boolean"},
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "userapi.ListUsersResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/userapi.User"}}
            }
        },
        "userapi.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "userapi.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "User Directory Service API",
	Description:      "Credential and role administration service with stateless HTTP Basic authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
