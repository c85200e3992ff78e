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
        "/chat": {
            "post": {
                "description": "Appends the message to the user's history, asks the model and returns its reply. userClass is required on the first message of a new user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Chat with the study assistant",
                "parameters": [
                    {
                        "description": "Chat message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/chat.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/chat.ChatResponse"}},
                    "400": {"description": "missing field", "schema": {"type": "string"}},
                    "500": {"description": "fallback reply", "schema": {"$ref": "#/definitions/chat.ChatResponse"}}
                }
            }
        },
        "/quiz": {
            "post": {
                "description": "Asks the model for five questions on the topic and returns the raw text. The quiz count of a known user is incremented; unknown users are not created.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Generate a multiple choice quiz",
                "parameters": [
                    {
                        "description": "Quiz topic",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/aiquiz.QuizRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/aiquiz.QuizResponse"}},
                    "400": {"description": "missing field", "schema": {"type": "string"}},
                    "500": {"description": "fallback quiz", "schema": {"$ref": "#/definitions/aiquiz.QuizResponse"}}
                }
            }
        },
        "/profiles/{username}": {
            "get": {
                "description": "Returns the stored grade, conversation history and quiz count of a user.",
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Get a user profile",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.UserProfile"}},
                    "400": {"description": "username required", "schema": {"type": "string"}},
                    "404": {"description": "profile not found", "schema": {"type": "string"}},
                    "500": {"description": "internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "aiquiz.QuizRequest": {
            "type": "object",
            "properties": {
                "topic": {"type": "string", "example": "Photosynthesis"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "aiquiz.QuizResponse": {
            "type": "object",
            "properties": {
                "quiz": {"type": "string"}
            }
        },
        "chat.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Explain photosynthesis"},
                "userClass": {"type": "string", "example": "9"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "chat.ChatResponse": {
            "type": "object",
            "properties": {
                "reply": {"type": "string", "example": "Photosynthesis is how plants turn light into food..."}
            }
        },
        "profile.Turn": {
            "type": "object",
            "properties": {
                "sender": {"type": "string", "enum": ["user", "ai"]},
                "text": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "profile.UserProfile": {
            "type": "object",
            "properties": {
                "grade": {"type": "string"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/profile.Turn"}},
                "quizzesTaken": {"type": "integer"},
                "username": {"type": "string"}
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
	Title:            "QuizMate API",
	Description:      "Study assistant backend: chat with per-user memory and multiple choice quiz generation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
