// Package docs holds the OpenAPI description served at /swagger.
package docs

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
        "/catalog": {
            "get": {
                "description": "Lists universities, branches, semesters, subjects and resource kinds",
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Form catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/resource": {
            "get": {
                "description": "Lists resources, newest first, with optional classification and kind filters",
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "List resources",
                "parameters": [
                    {"type": "string", "description": "Filter by university", "name": "university", "in": "query"},
                    {"type": "string", "description": "Filter by branch", "name": "branch", "in": "query"},
                    {"type": "string", "description": "Filter by semester", "name": "semester", "in": "query"},
                    {"type": "string", "description": "Filter by subject", "name": "subject", "in": "query"},
                    {"type": "string", "description": "Filter by kind (PYQ, Notes, Video)", "name": "kind", "in": "query"},
                    {"type": "string", "description": "Sort order by creation time (asc, desc)", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 10)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Resources retrieved", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a resource with any combination of PYQ, notes and video sub-resources. Only the fields of submitted kinds are sent.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Create a resource",
                "parameters": [
                    {"type": "string", "description": "University code", "name": "university", "in": "formData", "required": true},
                    {"type": "string", "description": "Branch code", "name": "branch", "in": "formData", "required": true},
                    {"type": "string", "description": "Semester", "name": "semester", "in": "formData", "required": true},
                    {"type": "string", "description": "Subject", "name": "subject", "in": "formData", "required": true},
                    {"type": "string", "description": "PYQ title", "name": "pyqTitle", "in": "formData"},
                    {"type": "file", "description": "PYQ PDF", "name": "pyqFile", "in": "formData"},
                    {"type": "string", "description": "Notes title", "name": "noteTitle", "in": "formData"},
                    {"type": "file", "description": "Notes PDF", "name": "noteFile", "in": "formData"},
                    {"type": "string", "description": "Video title", "name": "videoTitle", "in": "formData"},
                    {"type": "string", "description": "Video description", "name": "videoDescription", "in": "formData"},
                    {"type": "string", "description": "Video link", "name": "videoUrl", "in": "formData"},
                    {"type": "file", "description": "Video thumbnail image", "name": "videoImage", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Resource created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/resource/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get a resource",
                "parameters": [
                    {"type": "string", "description": "Resource ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Resource retrieved", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces a resource's fields. Stored files are kept unless a new one is uploaded; kinds that are not submitted are removed.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Update a resource",
                "parameters": [
                    {"type": "string", "description": "Resource ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "University code", "name": "university", "in": "formData", "required": true},
                    {"type": "string", "description": "Branch code", "name": "branch", "in": "formData", "required": true},
                    {"type": "string", "description": "Semester", "name": "semester", "in": "formData", "required": true},
                    {"type": "string", "description": "Subject", "name": "subject", "in": "formData", "required": true},
                    {"type": "string", "description": "PYQ title", "name": "pyqTitle", "in": "formData"},
                    {"type": "file", "description": "PYQ PDF", "name": "pyqFile", "in": "formData"},
                    {"type": "string", "description": "Notes title", "name": "noteTitle", "in": "formData"},
                    {"type": "file", "description": "Notes PDF", "name": "noteFile", "in": "formData"},
                    {"type": "string", "description": "Video title", "name": "videoTitle", "in": "formData"},
                    {"type": "string", "description": "Video description", "name": "videoDescription", "in": "formData"},
                    {"type": "string", "description": "Video link", "name": "videoUrl", "in": "formData"},
                    {"type": "file", "description": "Video thumbnail image", "name": "videoImage", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Resource updated", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Delete a resource",
                "parameters": [
                    {"type": "string", "description": "Resource ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Resource deleted", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "message": {"type": "string", "example": "Validation failed"},
                "field": {"type": "string", "example": "pyqFile"},
                "severity": {"type": "string", "example": "ERROR"},
                "details": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Resource Hub API",
	Description:      "API for submitting and browsing study resources: previous year questions, notes and videos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
