package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FMS API",
        "description": "Facilities work-order management backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, logout and password management"},
        {"name": "WorkRequests", "description": "Work request lifecycle"},
        {"name": "Inspections", "description": "Inspection reports"},
        {"name": "ActualWork", "description": "Actual work reports"},
        {"name": "Accomplishments", "description": "Accomplishment reports"},
        {"name": "Feedback", "description": "Requester feedback and ratings"},
        {"name": "Lookups", "description": "Reference data tables"},
        {"name": "Users", "description": "Account administration"},
        {"name": "Manpower", "description": "Manpower roster"},
        {"name": "Reports", "description": "Asynchronous CSV/PDF exports"},
        {"name": "Dashboard", "description": "Aggregated summary"},
        {"name": "Audit", "description": "Audit trail"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout and close the session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change own password",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Old password mismatch"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["WorkRequests"],
                "summary": "List work requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "location", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"},
                    {"name": "fiscalYear", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "includeArchived", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["WorkRequests"],
                "summary": "Submit a work request",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "description", "in": "formData", "type": "string", "required": true},
                    {"name": "office_name", "in": "formData", "type": "string", "required": true},
                    {"name": "location_name", "in": "formData", "type": "string", "required": true},
                    {"name": "category_name", "in": "formData", "type": "string", "required": true},
                    {"name": "area", "in": "formData", "type": "string"},
                    {"name": "overtime", "in": "formData", "type": "boolean"},
                    {"name": "fiscal_year", "in": "formData", "type": "string", "required": true},
                    {"name": "file", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["WorkRequests"],
                "summary": "Get work request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["WorkRequests"],
                "summary": "Update work request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["WorkRequests"],
                "summary": "Archive work request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/requests/{id}/status": {
            "patch": {
                "tags": ["WorkRequests"],
                "summary": "Update work request status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unknown status"}
                }
            }
        },
        "/accomplishments": {
            "post": {
                "tags": ["Accomplishments"],
                "summary": "Create or update an accomplishment report",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Work request not found"}
                }
            }
        },
        "/feedback": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Submit or update feedback",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/lookups/{kind}": {
            "get": {
                "tags": ["Lookups"],
                "summary": "List lookup entries",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true, "enum": ["categories", "offices", "locations", "divisions", "user_types"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Lookups"],
                "summary": "Create lookup entry",
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Name already exists"}
                }
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a report export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted"}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Get report job status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not your job"}
                }
            }
        },
        "/reports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished report",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary",
                "parameters": [
                    {"name": "fiscalYear", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/audit": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit trail entries",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ReportRequest": {
            "type": "object",
            "required": ["type", "fiscalYear", "format"],
            "properties": {
                "type": {"type": "string", "enum": ["requests", "accomplishments", "feedback"]},
                "fiscalYear": {"type": "string"},
                "status": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
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
                "isSuccess": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
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
