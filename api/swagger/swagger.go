package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Beauty Availability API",
        "description": "Slot availability and schedule maintenance for salon bookings",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Labeled 15-minute slot availability"},
        {"name": "Schedule", "description": "Salon hours, staff rules and exceptions"}
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
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Labeled slot list for one salon-local date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"},
                    {"name": "serviceDurationMinutes", "in": "query", "type": "integer", "required": true},
                    {"name": "staffId", "in": "query", "type": "string"},
                    {"name": "bufferMinutes", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown salon or staff member", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Schedule store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/export": {
            "get": {
                "tags": ["Availability"],
                "summary": "Printable day sheet (CSV or PDF)",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"},
                    {"name": "serviceDurationMinutes", "in": "query", "type": "integer", "required": true},
                    {"name": "staffId", "in": "query", "type": "string"},
                    {"name": "bufferMinutes", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/api/v1/schedule/working-hours": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Salon weekly working hours",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Replace the salon's weekly working hours",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceWeekRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/staff/{id}/rules": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Staff weekly rules and exceptions",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Replace a staff member's weekly rules",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceWeekRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/staff/{id}/exceptions": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Schedule exceptions of a staff member",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Register a schedule exception",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExceptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/staff/{id}/exceptions/{exceptionId}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove a schedule exception",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "exceptionId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        }
    },
    "definitions": {
        "ReplaceWeekRequest": {
            "type": "object",
            "properties": {
                "days": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleDayRequest"}
                }
            }
        },
        "ScheduleDayRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "is_working_day": {"type": "boolean"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "17:00"}
            }
        },
        "CreateExceptionRequest": {
            "type": "object",
            "properties": {
                "date_range_start": {"type": "string", "example": "2025-07-01"},
                "date_range_end": {"type": "string", "example": "2025-07-14"},
                "type": {"type": "string", "enum": ["DAY_OFF", "SICK_LEAVE", "CUSTOM_HOURS"]},
                "custom_start_time": {"type": "string", "example": "10:00"},
                "custom_end_time": {"type": "string", "example": "14:00"}
            }
        },
        "Slot": {
            "type": "object",
            "properties": {
                "startLocal": {"type": "string", "example": "09:00"},
                "endLocal": {"type": "string", "example": "10:15"},
                "startUtc": {"type": "string", "format": "date-time"},
                "endUtc": {"type": "string", "format": "date-time"},
                "available": {"type": "boolean"},
                "unavailableReason": {"type": "string", "enum": ["SALON_CLOSED", "STAFF_OFF", "OUTSIDE_WORKING_HOURS", "APPOINTMENT_CONFLICT"]}
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
