// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/surveys": {
            "get": {
                "description": "Lists the surveys created by the caller plus every anonymous survey, ten per page, newest first.",
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Lists surveys",
                "parameters": [
                    {"type": "integer", "description": "page number, starting at 1", "name": "page", "in": "query"},
                    {"type": "string", "description": "title search", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "description": "Creates a survey with its ordered questions. Users listed in notify_user_ids are emailed afterwards on a best-effort basis.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Creates a survey",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/surveys/{id}": {
            "delete": {
                "description": "Deletes the survey with its questions, responses and answers. Only the creator may delete it.",
                "tags": ["surveys"],
                "summary": "Deletes a survey",
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/surveys/{id}/responses": {
            "post": {
                "description": "Validates the answers against the survey's questions and stores them together with the completion reward. A user can respond once per survey.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Submits answers to a survey",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/surveys/{id}/results": {
            "get": {
                "description": "Per-question answer counts. With summarized=true the counts materialised by the summary job are returned instead of live ones.",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Survey results",
                "parameters": [
                    {"type": "boolean", "description": "read materialised counts", "name": "summarized", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/surveys/{id}/notifications": {
            "post": {
                "description": "Sends the \"new survey\" email to every listed user and reports the outcome per recipient. Individual delivery failures do not fail the request.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Emails a survey to users",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/oauth/callback": {
            "post": {
                "description": "Exchanges the Google ID token posted in the credential form field for session cookies and redirects to the app.",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Google sign-in callback",
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/oauth/logout": {
            "post": {
                "description": "Clears the refresh token cookie",
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Logs the authenticated user out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/oauth/refresh": {
            "post": {
                "description": "Creates a new access token cookie based on the refresh token. This cookie is used as authentication for ` + "`" + `/api` + "`" + ` calls.",
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Refreshes the access token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/webhooks/identity": {
            "post": {
                "description": "Mirrors user.created, user.updated and user.deleted events into the users table. Requests must carry valid svix signature headers.",
                "consumes": ["application/json"],
                "tags": ["webhooks"],
                "summary": "Identity provider webhook",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
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
	Title:            "Survey API",
	Description:      "Create surveys, collect validated responses and notify employees.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
