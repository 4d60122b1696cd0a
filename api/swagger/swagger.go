package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Siswa Admin API",
        "description": "Backend for the student records administration portal",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Session management"},
        {"name": "Students", "description": "Student record management"},
        {"name": "Dashboard", "description": "Statistics and reports"},
        {"name": "Settings", "description": "Print settings"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Rotate refresh token",
                "responses": {
                    "200": {"description": "New token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Token expired or revoked"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Revoke current session",
                "responses": {
                    "204": {"description": "Session revoked"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "responses": {
                    "204": {"description": "Password changed"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "responses": {
                    "200": {"description": "User info", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List student records with completeness",
                "parameters": [
                    {"in": "query", "name": "search", "type": "string", "description": "Substring match on name or NISN"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["semua", "belum", "valid", "residu"]},
                    {"in": "query", "name": "dateFrom", "type": "string", "description": "yyyy-MM-dd inclusive"},
                    {"in": "query", "name": "dateTo", "type": "string", "description": "yyyy-MM-dd inclusive"},
                    {"in": "query", "name": "kelengkapan", "type": "string", "enum": ["Semua", "Lengkap", "Cukup", "Kurang"]},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Filtered records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "responses": {
                    "201": {"description": "Record created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get one record",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Replace form fields",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a record (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/students/{id}/status": {
            "patch": {
                "tags": ["Students"],
                "summary": "Change validation status",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Record after transition", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/students/{id}/profile": {
            "get": {
                "tags": ["Students"],
                "summary": "Printable profile PDF",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/students/bulk/status": {
            "post": {
                "tags": ["Students"],
                "summary": "Change status for many records atomically",
                "responses": {
                    "200": {"description": "Count of updated records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/bulk/delete": {
            "post": {
                "tags": ["Students"],
                "summary": "Delete many records atomically (admin)",
                "responses": {
                    "200": {"description": "Count of deleted records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Import a workbook, reconciling by NISN",
                "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "file", "type": "file", "required": true}],
                "responses": {
                    "200": {"description": "Created/updated counts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Batch rejected"}
                }
            }
        },
        "/students/import/template": {
            "get": {
                "tags": ["Students"],
                "summary": "Download the import template workbook",
                "responses": {
                    "200": {"description": "XLSX document"}
                }
            }
        },
        "/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export filtered or selected records",
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "xlsx", "pdf"], "required": true},
                    {"in": "query", "name": "ids", "type": "string", "description": "Comma separated ids; overrides the filter"}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        },
        "/settings/print": {
            "get": {
                "tags": ["Settings"],
                "summary": "Letterhead and sign-off block for printed profiles",
                "responses": {
                    "200": {"description": "Current settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update print settings (admin)",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/PrintSettings"}}
                ],
                "responses": {
                    "200": {"description": "Updated settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Overview statistics",
                "responses": {
                    "200": {"description": "Stats payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/reports": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Reports aggregations",
                "responses": {
                    "200": {"description": "Reports payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "PrintSettings": {
            "type": "object",
            "properties": {
                "schoolLetterheadUrl": {"type": "string"},
                "academicYear": {"type": "string"},
                "signaturePlace": {"type": "string"},
                "committeeHeadTitle": {"type": "string"},
                "committeeHeadName": {"type": "string"},
                "committeeHeadNuptk": {"type": "string"},
                "committeeHeadNip": {"type": "string"},
                "committeeHeadNpa": {"type": "string"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
