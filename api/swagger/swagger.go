package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Ministerio Antioquia API",
        "description": "Back office for the ministry site: prayer clock, post-it board, suggestions, news and missionaries.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Clock", "description": "24-hour prayer clock and its roster"},
        {"name": "Board", "description": "Post-it boards and notes"},
        {"name": "Suggestions", "description": "Public suggestion moderation"},
        {"name": "News", "description": "News feed"},
        {"name": "Missionaries", "description": "Missionary directory"},
        {"name": "Settings", "description": "Site-wide toggles"},
        {"name": "Push", "description": "Web push notifications"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/clock": {
            "get": {
                "tags": ["Clock"],
                "summary": "Current prayer clock with its 24-hour roster",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/board": {
            "get": {
                "tags": ["Board"],
                "summary": "Currently active board with its post-its",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/suggestions": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Submit a suggestion for the active board",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSuggestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No active board"}
                }
            }
        },
        "/api/admin/suggestions/{id}/approve": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Approve a suggestion, promoting it onto the board",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or already reviewed"}
                }
            }
        },
        "/api/admin/suggestions/{id}/refuse": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Refuse a suggestion, keeping it in history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or already reviewed"}
                }
            }
        },
        "/api/admin/events": {
            "get": {
                "tags": ["Suggestions"],
                "summary": "Live moderation event stream (SSE)",
                "security": [{"BearerAuth": []}],
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "Event stream"}
                }
            }
        },
        "/api/admin/clocks/{id}/export": {
            "get": {
                "tags": ["Clock"],
                "summary": "Export a clock's roster as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Roster file"}
                }
            }
        }
    },
    "definitions": {
        "CreateSuggestionRequest": {
            "type": "object",
            "required": ["author_name", "content"],
            "properties": {
                "author_name": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
