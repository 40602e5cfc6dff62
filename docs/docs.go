// Package docs holds the Swagger description of the HTTP routes. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/": {
            "get": {
                "produces": ["text/html"],
                "tags": ["events"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to /login without a session"}
                }
            }
        },
        "/add": {
            "get": {
                "produces": ["text/html"],
                "tags": ["events"],
                "summary": "New event page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["events"],
                "summary": "Create event",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": false},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "Time (HH:MM)", "name": "time", "in": "formData", "required": true},
                    {"type": "string", "description": "Location", "name": "location", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to / on success, back to /add on invalid input"}
                }
            }
        },
        "/delete/{id}": {
            "post": {
                "tags": ["events"],
                "summary": "Delete event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to /"}
                }
            }
        },
        "/edit/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["events"],
                "summary": "Edit event page",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to / when the event does not exist"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["events"],
                "summary": "Update event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": false},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "Time (HH:MM)", "name": "time", "in": "formData", "required": true},
                    {"type": "string", "description": "Location", "name": "location", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to / on success, back to /edit/{id} on invalid input"}
                }
            }
        },
        "/events.ics": {
            "get": {
                "produces": ["text/calendar"],
                "tags": ["events"],
                "summary": "iCalendar export",
                "responses": {
                    "200": {"description": "VCALENDAR document", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to /login without a session"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}}
                }
            }
        },
        "/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": false}
                ],
                "responses": {
                    "200": {"description": "Login page with an error message", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to / with the session cookie set"}
                }
            }
        },
        "/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "302": {"description": "Redirect to /login"}
                }
            }
        },
        "/signup": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Registration page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": false}
                ],
                "responses": {
                    "302": {"description": "Redirect to /login on success, back to /signup on failure"},
                    "500": {"description": "HTML error page", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.dependencyStatus"}
                },
                "status": {"type": "string"}
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
	Title:            "Event Manager",
	Description:      "Server-rendered event management: accounts, sessions and event CRUD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
