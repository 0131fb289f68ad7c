// Package docs 注册 Swagger 文档，内容与 handler 上的 swag 注解保持一致。
// 修改注解后可以用 swag init -g cmd/server/main.go 重新生成本文件。
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
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "用户登录",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "登录成功",
						"schema": {
							"$ref": "#/definitions/handlers.LoginResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "登录凭证",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.LoginRequest"
						}
					}
				]
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "用户登出",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "登出成功",
						"schema": {
							"$ref": "#/definitions/utils.MessageResponse"
						}
					}
				}
			}
		},
		"/auth/check-session": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "检查登录状态",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.SessionStatus"
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "创建用户",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "创建成功",
						"schema": {
							"$ref": "#/definitions/handlers.UserEnvelope"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "新用户信息",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.RegisterUserPayload"
						}
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "用户列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.UserResponse"
							}
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "获取用户",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.UserResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"put": {
				"tags": [
					"users"
				],
				"summary": "更新用户",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.UserResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "要更新的字段",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateUserPayload"
						}
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "删除用户",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/utils.MessageResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/users/{id}/toggle-upload": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "切换上传权限",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.UserEnvelope"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/profile": {
			"get": {
				"tags": [
					"profile"
				],
				"summary": "当前用户资料",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.UserResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"put": {
				"tags": [
					"profile"
				],
				"summary": "修改自己的密码",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/utils.MessageResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "新密码",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateProfilePayload"
						}
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/upload": {
			"post": {
				"tags": [
					"files"
				],
				"summary": "上传文件",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "上传成功",
						"schema": {
							"$ref": "#/definitions/handlers.FileEnvelope"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "file",
						"description": "要上传的文件",
						"name": "file",
						"in": "formData",
						"required": true
					},
					{
						"type": "integer",
						"description": "展示时长（秒）",
						"name": "display_time",
						"in": "formData"
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/files": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "文件列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.FileResponse"
							}
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/files/active": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "展示端文件列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.FileResponse"
							}
						}
					}
				}
			}
		},
		"/files/reorder": {
			"post": {
				"tags": [
					"files"
				],
				"summary": "批量调整顺序",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/utils.MessageResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "新的顺序",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ReorderPayload"
						}
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/files/{id}": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "获取文件",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.FileResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "文件ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"put": {
				"tags": [
					"files"
				],
				"summary": "更新文件",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.FileResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "文件ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "要更新的字段",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.UpdateFilePayload"
						}
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"delete": {
				"tags": [
					"files"
				],
				"summary": "删除文件",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/utils.MessageResponse"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "文件ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/files/{id}/toggle-active": {
			"post": {
				"tags": [
					"files"
				],
				"summary": "启用/停用文件",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.FileEnvelope"
						}
					},
					"401": {
						"description": "需要登录",
						"schema": {
							"$ref": "#/definitions/utils.APIErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "文件ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/serve/{filename}": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "输出文件内容",
				"produces": [
					"application/octet-stream"
				],
				"responses": {
					"200": {
						"description": "文件内容"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "存储文件名",
						"name": "filename",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/settings": {
			"get": {
				"tags": [
					"settings"
				],
				"summary": "展示配置",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Setting"
							}
						}
					}
				}
			}
		},
		"/health": {
			"get": {
				"tags": [
					"system"
				],
				"summary": "健康检查",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"utils.APIErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"details": {}
			}
		},
		"utils.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handlers.LoginRequest": {
			"type": "object",
			"required": [
				"password",
				"username"
			],
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handlers.LoginResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"expires_at": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/models.UserResponse"
				}
			}
		},
		"handlers.UserEnvelope": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/models.UserResponse"
				}
			}
		},
		"handlers.FileEnvelope": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"file": {
					"$ref": "#/definitions/models.FileResponse"
				}
			}
		},
		"services.SessionStatus": {
			"type": "object",
			"properties": {
				"logged_in": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/models.UserResponse"
				}
			}
		},
		"models.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"can_upload": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"models.RegisterUserPayload": {
			"type": "object",
			"required": [
				"password",
				"username"
			],
			"properties": {
				"username": {
					"type": "string",
					"maxLength": 80
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"admin",
						"user"
					]
				},
				"can_upload": {
					"type": "boolean"
				}
			}
		},
		"models.UpdateUserPayload": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"admin",
						"user"
					]
				},
				"can_upload": {
					"type": "boolean"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"models.UpdateProfilePayload": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				}
			}
		},
		"models.FileResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"filename": {
					"type": "string"
				},
				"original_name": {
					"type": "string"
				},
				"file_type": {
					"type": "string",
					"enum": [
						"video",
						"document",
						"pdf"
					]
				},
				"file_path": {
					"type": "string"
				},
				"display_time": {
					"type": "integer"
				},
				"is_active": {
					"type": "boolean"
				},
				"upload_order": {
					"type": "integer"
				},
				"uploaded_by": {
					"type": "integer"
				},
				"uploaded_at": {
					"type": "string"
				},
				"uploader_name": {
					"type": "string"
				}
			}
		},
		"models.UpdateFilePayload": {
			"type": "object",
			"properties": {
				"display_time": {
					"type": "integer",
					"minimum": 1
				},
				"is_active": {
					"type": "boolean"
				},
				"upload_order": {
					"type": "integer"
				}
			}
		},
		"models.FileOrder": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"order": {
					"type": "integer"
				}
			}
		},
		"models.ReorderPayload": {
			"type": "object",
			"properties": {
				"file_orders": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.FileOrder"
					}
				}
			}
		},
		"models.Setting": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"key": {
					"type": "string"
				},
				"value": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "session",
			"in": "cookie"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Dashboard App API",
	Description:      "数字标牌后台：用户、会话、媒体上传与展示顺序管理",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
