// Package docs holds the Swagger document served at /swagger.
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
        "/profile": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "progress"
                ],
                "summary": "Get profile",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/progress": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "progress"
                ],
                "summary": "Get progress record",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/progress/xp": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "progress"
                ],
                "summary": "Grant experience",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/progress/activity": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "progress"
                ],
                "summary": "Record activity",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/progress/reset": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "progress"
                ],
                "summary": "Reset progress",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/achievements": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "achievements"
                ],
                "summary": "Get achievements",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/achievements/{id}/unlock": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "achievements"
                ],
                "summary": "Unlock achievement",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/challenges": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "challenges"
                ],
                "summary": "Get challenges",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/challenges/{id}/complete": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "challenges"
                ],
                "summary": "Complete challenge",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/budget/entries": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budget"
                ],
                "summary": "Get budget entries",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "budget"
                ],
                "summary": "Create a budget entry",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/budget/entries/count": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budget"
                ],
                "summary": "Count budget entries",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/budget/split": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "budget"
                ],
                "summary": "Split a budget",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/goals": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Get savings goals",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Create a savings goal",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/goals/timeline": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Goal timeline",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/goals/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Get a savings goal",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/goals/{id}/deposits": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Deposit to a savings goal",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/investments": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "investments"
                ],
                "summary": "Get investments",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "investments"
                ],
                "summary": "Record an investment",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/sip/calculate": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "investments"
                ],
                "summary": "Calculate a SIP",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/quiz/questions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "quiz"
                ],
                "summary": "Get quiz questions",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/quiz/start": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "quiz"
                ],
                "summary": "Start quiz",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/quiz/submit": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "quiz"
                ],
                "summary": "Submit quiz",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/summary": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Get financial summary",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/activity": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "activity"
                ],
                "summary": "Get activity",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/market/funds": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "market"
                ],
                "summary": "Get funds",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/leaderboard": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "market"
                ],
                "summary": "Get leaderboard",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FinLearn API",
	Description:      "FinLearn is a gamified personal-finance learning app. Budgets, savings goals, SIP investments and quizzes earn experience, levels and achievements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
