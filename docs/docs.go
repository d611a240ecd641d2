// Package docs holds the OpenAPI document served under /swagger. It is kept
// by hand in step with the @Router annotations in internal/handlers.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Panel snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}}
                }
            }
        },
        "/api/v1/connection/check": {
            "post": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Check device connection",
                "responses": {
                    "200": {"description": "connected, snapshot", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/motor": {
            "get": {
                "produces": ["application/json"],
                "tags": ["motor"],
                "summary": "Motor state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MotorState"}}
                }
            }
        },
        "/api/v1/motor/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["motor"],
                "summary": "Toggle motor",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ToggleResponse"}},
                    "409": {"description": "not connected or busy", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/duration": {
            "get": {
                "produces": ["application/json"],
                "tags": ["motor"],
                "summary": "Run duration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DurationRequest"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["motor"],
                "summary": "Set run duration",
                "parameters": [
                    {"description": "Duration payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DurationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DurationRequest"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/schedules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "List schedules",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Schedule"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Create schedule",
                "parameters": [
                    {"description": "Schedule payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Schedule"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/schedules/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Update schedule",
                "parameters": [
                    {"type": "integer", "description": "Schedule id", "name": "id", "in": "path", "required": true},
                    {"description": "Schedule payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Schedule"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Delete schedule",
                "parameters": [
                    {"type": "integer", "description": "Schedule id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Schedule"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Config"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Save configuration",
                "description": "Persists the device endpoint and mode, then re-checks the connection",
                "parameters": [
                    {"description": "Settings payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Config"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/settings/theme": {
            "post": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Toggle theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Config"}}
                }
            }
        },
        "/api/v1/settings/widgets/{name}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Show or hide a widget",
                "parameters": [
                    {"type": "string", "description": "Widget name", "name": "name", "in": "path", "required": true},
                    {"description": "Visibility payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.WidgetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Config"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Irrigation history",
                "responses": {
                    "200": {"description": "count, entries", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/history/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Today's activity",
                "responses": {
                    "200": {"description": "hours", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List log entries",
                "parameters": [
                    {"enum": ["info", "success", "error"], "type": "string", "description": "Entry type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, unread, entries", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Clear the log",
                "responses": {
                    "200": {"description": "count, entries", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/logs/read": {
            "post": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Mark the log as read",
                "responses": {
                    "200": {"description": "unread", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.DurationRequest": {
            "type": "object",
            "properties": {"duration": {"type": "integer", "example": 30}}
        },
        "handlers.ScheduleRequest": {
            "type": "object",
            "properties": {
                "time": {"type": "string", "example": "06:00"},
                "days": {"type": "array", "items": {"type": "integer"}, "example": [0, 2, 4]},
                "enabled": {"type": "boolean", "example": true}
            }
        },
        "handlers.SettingsRequest": {
            "type": "object",
            "properties": {
                "esp32_ip": {"type": "string", "example": "192.168.1.100"},
                "esp32_port": {"type": "integer", "example": 80},
                "test_mode": {"type": "boolean", "example": false},
                "notifications": {"type": "boolean", "example": true}
            }
        },
        "handlers.ToggleResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "on"},
                "snapshot": {"$ref": "#/definitions/models.Snapshot"}
            }
        },
        "handlers.WidgetRequest": {
            "type": "object",
            "properties": {"visible": {"type": "boolean", "example": true}}
        },
        "models.Config": {
            "type": "object",
            "properties": {
                "esp32_ip": {"type": "string"},
                "esp32_port": {"type": "integer"},
                "test_mode": {"type": "boolean"},
                "notifications": {"type": "boolean"},
                "theme": {"type": "string"},
                "widgetVisibility": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "models.MotorState": {
            "type": "object",
            "properties": {"state": {"type": "string"}}
        },
        "models.Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "time": {"type": "string"},
                "days": {"type": "array", "items": {"type": "integer"}},
                "enabled": {"type": "boolean"}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "simulation": {"type": "boolean"},
                "motor_on": {"type": "boolean"},
                "duration": {"type": "integer"},
                "schedules": {"type": "array", "items": {"$ref": "#/definitions/models.Schedule"}},
                "unread_logs": {"type": "integer"},
                "theme": {"type": "string"},
                "device_host": {"type": "string"},
                "device_port": {"type": "integer"}
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
	Title:            "Irrigation Panel API",
	Description:      "Mirrors an irrigation controller's motor, duration and schedules; keeps settings and run history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
