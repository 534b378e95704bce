// Package docs contiene el documento OpenAPI de la API, registrado en swag.
// Se sirve en /docs cuando SWAGGER_ENABLED=true.
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
		"/api/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Iniciar sesión",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.LoginResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.LoginRequest"
						}
					}
				]
			}
		},
		"/api/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Usuario autenticado",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/api/auth/change-password": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Cambiar la propia contraseña",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.MessageResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ChangePasswordRequest"
						}
					}
				]
			}
		},
		"/api/books": {
			"get": {
				"tags": [
					"books"
				],
				"summary": "Listar o filtrar libros",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.BookResponse"
							}
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "isbn",
						"in": "query",
						"description": "ISBN"
					},
					{
						"type": "string",
						"name": "title",
						"in": "query",
						"description": "Título"
					},
					{
						"type": "string",
						"name": "author",
						"in": "query",
						"description": "Autor"
					},
					{
						"type": "string",
						"name": "publisher",
						"in": "query",
						"description": "Editorial"
					}
				]
			},
			"post": {
				"tags": [
					"books"
				],
				"summary": "Crear libro",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.BookResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateBookRequest"
						}
					}
				]
			}
		},
		"/api/books/search": {
			"get": {
				"tags": [
					"books"
				],
				"summary": "Búsqueda rápida",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.BookResponse"
							}
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "q",
						"in": "query",
						"description": "Término"
					}
				]
			}
		},
		"/api/books/{id}": {
			"get": {
				"tags": [
					"books"
				],
				"summary": "Obtener libro",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.BookResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"books"
				],
				"summary": "Actualizar libro",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.BookResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateBookRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"books"
				],
				"summary": "Eliminar libro (super admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.MessageResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/purchases": {
			"get": {
				"tags": [
					"purchases"
				],
				"summary": "Listar compras",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.PurchaseResponse"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "status",
						"in": "query",
						"description": "pending | paid | cancelled | added_to_inventory"
					}
				]
			},
			"post": {
				"tags": [
					"purchases"
				],
				"summary": "Crear orden de compra",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CreatePurchaseResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreatePurchaseRequest"
						}
					}
				]
			}
		},
		"/api/purchases/{id}": {
			"get": {
				"tags": [
					"purchases"
				],
				"summary": "Obtener compra",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PurchaseResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/purchases/{id}/pay": {
			"post": {
				"tags": [
					"purchases"
				],
				"summary": "Pagar compra",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PurchaseResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/purchases/{id}/cancel": {
			"post": {
				"tags": [
					"purchases"
				],
				"summary": "Cancelar compra",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PurchaseResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/purchases/{id}/add-to-inventory": {
			"post": {
				"tags": [
					"purchases"
				],
				"summary": "Ingresar compra al inventario",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.AddToInventoryResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/dto.AddToInventoryRequest"
						}
					}
				]
			}
		},
		"/api/sales": {
			"get": {
				"tags": [
					"sales"
				],
				"summary": "Listar ventas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.SaleResponse"
							}
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"sales"
				],
				"summary": "Registrar venta",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CreateSaleResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateSaleRequest"
						}
					}
				]
			}
		},
		"/api/sales/{id}": {
			"get": {
				"tags": [
					"sales"
				],
				"summary": "Obtener venta",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SaleResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/finance/transactions": {
			"get": {
				"tags": [
					"finance"
				],
				"summary": "Listar asientos contables",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.TransactionResponse"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "type",
						"in": "query",
						"description": "income | expense"
					},
					{
						"type": "string",
						"name": "start_date",
						"in": "query",
						"description": "Desde"
					},
					{
						"type": "string",
						"name": "end_date",
						"in": "query",
						"description": "Hasta"
					}
				]
			}
		},
		"/api/finance/summary": {
			"get": {
				"tags": [
					"finance"
				],
				"summary": "Resumen financiero",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.FinancialSummaryResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "start_date",
						"in": "query",
						"description": "Desde"
					},
					{
						"type": "string",
						"name": "end_date",
						"in": "query",
						"description": "Hasta"
					}
				]
			}
		},
		"/api/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Listar usuarios (super admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.UserResponse"
							}
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"users"
				],
				"summary": "Crear usuario (super admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateUserRequest"
						}
					}
				]
			}
		},
		"/api/users/profile": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Actualizar el propio perfil",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateProfileRequest"
						}
					}
				]
			}
		},
		"/api/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Obtener usuario",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"users"
				],
				"summary": "Actualizar usuario",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateUserRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Eliminar usuario (super admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.MessageResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/users/{id}/reset-password": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Restablecer contraseña (super admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.MessageResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ResetPasswordRequest"
						}
					}
				]
			}
		},
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Estado del servicio",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/api/finance/dashboard": {
			"get": {
				"tags": [
					"finance"
				],
				"summary": "Dashboard financiero",
				"security": [
					{
						"Bearer": []
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.DashboardSummaryResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"dto.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"dto.UserSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"real_name": {
					"type": "string"
				}
			}
		},
		"dto.BookSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				}
			}
		},
		"dto.LoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"username",
				"password"
			]
		},
		"dto.LoginResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/dto.UserResponse"
				}
			}
		},
		"dto.ChangePasswordRequest": {
			"type": "object",
			"properties": {
				"current_password": {
					"type": "string"
				},
				"new_password": {
					"type": "string"
				}
			},
			"required": [
				"current_password",
				"new_password"
			]
		},
		"dto.ResetPasswordRequest": {
			"type": "object",
			"properties": {
				"new_password": {
					"type": "string"
				}
			},
			"required": [
				"new_password"
			]
		},
		"dto.CreateBookRequest": {
			"type": "object",
			"properties": {
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"author": {
					"type": "string"
				},
				"publisher": {
					"type": "string"
				},
				"retail_price": {
					"type": "number"
				},
				"stock_quantity": {
					"type": "integer"
				}
			},
			"required": [
				"isbn",
				"title",
				"author",
				"publisher",
				"retail_price"
			]
		},
		"dto.UpdateBookRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"author": {
					"type": "string"
				},
				"publisher": {
					"type": "string"
				},
				"retail_price": {
					"type": "number"
				}
			}
		},
		"dto.BookResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"author": {
					"type": "string"
				},
				"publisher": {
					"type": "string"
				},
				"retail_price": {
					"type": "number"
				},
				"stock_quantity": {
					"type": "integer"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.PurchaseLineRequest": {
			"type": "object",
			"properties": {
				"book_id": {
					"type": "string"
				},
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"author": {
					"type": "string"
				},
				"publisher": {
					"type": "string"
				},
				"purchase_price": {
					"type": "number"
				},
				"quantity": {
					"type": "integer"
				}
			},
			"required": [
				"purchase_price",
				"quantity"
			]
		},
		"dto.CreatePurchaseRequest": {
			"type": "object",
			"properties": {
				"books": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.PurchaseLineRequest"
					}
				}
			},
			"required": [
				"books"
			]
		},
		"dto.CreatePurchaseResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"purchase_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"dto.AddToInventoryRequest": {
			"type": "object",
			"properties": {
				"retail_price": {
					"type": "number"
				}
			}
		},
		"dto.AddToInventoryResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"is_new_book": {
					"type": "boolean"
				},
				"book_id": {
					"type": "string"
				},
				"retail_price": {
					"type": "number"
				},
				"stock_quantity": {
					"type": "integer"
				}
			}
		},
		"dto.PurchaseResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"author": {
					"type": "string"
				},
				"publisher": {
					"type": "string"
				},
				"purchase_price": {
					"type": "number"
				},
				"quantity": {
					"type": "integer"
				},
				"total_cost": {
					"type": "number"
				},
				"status": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.SaleItemRequest": {
			"type": "object",
			"properties": {
				"book_id": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"unit_price": {
					"type": "number"
				}
			},
			"required": [
				"book_id",
				"quantity"
			]
		},
		"dto.CreateSaleRequest": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.SaleItemRequest"
					}
				},
				"book_id": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				}
			}
		},
		"dto.CreateSaleResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"sale_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"dto.SaleResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"book_id": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"unit_price": {
					"type": "number"
				},
				"total_price": {
					"type": "number"
				},
				"user_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"book": {
					"$ref": "#/definitions/dto.BookSummary"
				},
				"user": {
					"$ref": "#/definitions/dto.UserSummary"
				}
			}
		},
		"dto.TransactionResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"transaction_type": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"amount": {
					"type": "number"
				},
				"user_id": {
					"type": "string"
				},
				"source_type": {
					"type": "string"
				},
				"source_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"user": {
					"$ref": "#/definitions/dto.UserSummary"
				}
			}
		},
		"dto.FinancialSummaryResponse": {
			"type": "object",
			"properties": {
				"total_income": {
					"type": "number"
				},
				"total_expense": {
					"type": "number"
				},
				"net_profit": {
					"type": "number"
				}
			}
		},
		"dto.CreateUserRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"real_name": {
					"type": "string"
				},
				"employee_id": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"age": {
					"type": "integer"
				},
				"role": {
					"type": "string",
					"enum": [
						"admin",
						"super_admin"
					]
				}
			},
			"required": [
				"username",
				"password",
				"real_name",
				"employee_id",
				"gender",
				"age"
			]
		},
		"dto.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"real_name": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"age": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"employee_id": {
					"type": "string"
				}
			}
		},
		"dto.UpdateProfileRequest": {
			"type": "object",
			"properties": {
				"real_name": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"age": {
					"type": "integer"
				}
			}
		},
		"dto.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"real_name": {
					"type": "string"
				},
				"employee_id": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"age": {
					"type": "integer"
				},
				"role": {
					"type": "string"
				},
				"is_super_admin": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.TopBookResponse": {
			"type": "object",
			"properties": {
				"book_id": {
					"type": "string"
				},
				"isbn": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"quantity_sold": {
					"type": "integer"
				},
				"total_revenue": {
					"type": "number"
				}
			}
		},
		"dto.DashboardSummaryResponse": {
			"type": "object",
			"properties": {
				"today": {
					"$ref": "#/definitions/dto.FinancialSummaryResponse"
				},
				"month": {
					"$ref": "#/definitions/dto.FinancialSummaryResponse"
				},
				"top_books": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.TopBookResponse"
					}
				},
				"date_label": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
			"description": "Bearer <token>",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo información del documento; cmd/api ajusta Host y BasePath si hace falta.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Librería API",
	Description:      "Back office de la librería: catálogo, compras a proveedor, ventas, libro contable y usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
