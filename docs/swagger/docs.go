// Package swagger registers the OpenAPI document served at /swagger.
//
// The template mirrors the swag annotations on the feature handlers and is
// kept in step with them by hand; update it when a route or model changes.
package swagger

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
        "/api/comparison/execute-all": {
            "post": {
                "description": "Runs every enabled comparison rule and returns the results in configuration order.",
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "Execute All Rules",
                "responses": {
                    "200": {"description": "Run Report", "schema": {"$ref": "#/definitions/report.Report"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/comparison/execute-all-async": {
            "post": {
                "description": "Starts a background run of every enabled rule and returns its job id.",
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "Execute All Rules Asynchronously",
                "responses": {
                    "202": {"description": "Job Accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/comparison/execute-batch": {
            "post": {
                "description": "Runs the named comparison rules. The body is a JSON array of rule names.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "Execute Rules",
                "parameters": [
                    {"description": "Rule Names", "name": "names", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "Run Report", "schema": {"$ref": "#/definitions/report.Report"}},
                    "400": {"description": "Invalid Body", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Rule Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/comparison/execute/{ruleName}": {
            "post": {
                "description": "Runs a single comparison rule by name, including disabled rules.",
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "Execute Rule",
                "parameters": [
                    {"type": "string", "description": "Rule Name", "name": "ruleName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Rule Result", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Rule Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/comparison/jobs/{id}": {
            "get": {
                "description": "Returns the status of an async run and its report once finished.",
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "Get Job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Job Status", "schema": {"$ref": "#/definitions/comparison.JobStatus"}},
                    "404": {"description": "Job Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/comparison/rules": {
            "get": {
                "description": "Lists every configured comparison rule.",
                "produces": ["application/json"],
                "tags": ["comparison"],
                "summary": "List Rules",
                "responses": {
                    "200": {"description": "Rules", "schema": {"type": "array", "items": {"$ref": "#/definitions/runner.RuleInfo"}}}
                }
            }
        },
        "/api/connections/validate": {
            "get": {
                "description": "Runs a trivial query on every configured connection.",
                "produces": ["application/json"],
                "tags": ["connections"],
                "summary": "Validate Connections",
                "responses": {
                    "200": {"description": "Connection Report", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/connections/{name}/statistics": {
            "get": {
                "description": "Returns server version, server time and pool usage for a connection.",
                "produces": ["application/json"],
                "tags": ["connections"],
                "summary": "Connection Statistics",
                "parameters": [
                    {"type": "string", "description": "Connection Name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Statistics", "schema": {"$ref": "#/definitions/database.Statistics"}},
                    "404": {"description": "Connection Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Liveness probe. Does not touch the databases.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health",
                "responses": {
                    "200": {"description": "Service Up", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "comparison.JobStatus": {
            "type": "object",
            "properties": {
                "finished_at": {"type": "string"},
                "job_id": {"type": "string"},
                "report": {"$ref": "#/definitions/report.Report"},
                "started_at": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "database.Statistics": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "connection": {"type": "string"},
                "driver": {"type": "string"},
                "error": {"type": "string"},
                "idle": {"type": "integer"},
                "in_use": {"type": "integer"},
                "open_connections": {"type": "integer"},
                "server_time": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "report.Report": {
            "type": "object",
            "properties": {
                "generated_at": {"type": "string"},
                "results": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "run_id": {"type": "string"},
                "summary": {"$ref": "#/definitions/report.Summary"}
            }
        },
        "report.Summary": {
            "type": "object",
            "properties": {
                "differences": {"type": "integer"},
                "failed": {"type": "integer"},
                "partial": {"type": "integer"},
                "rules": {"type": "integer"},
                "succeeded": {"type": "integer"}
            }
        },
        "runner.RuleInfo": {
            "type": "object",
            "properties": {
                "compare_field": {"type": "string"},
                "description": {"type": "string"},
                "enabled": {"type": "boolean"},
                "key_field": {"type": "string"},
                "name": {"type": "string"},
                "predicate": {"type": "string"},
                "source": {"type": "string"},
                "target": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Field Comparator API",
	Description:      "Compares a field between source and target tables across databases.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
