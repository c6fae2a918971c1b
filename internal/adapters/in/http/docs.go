package http

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
        "/api/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateOrderRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/orders/{orderId}/{action}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order along its lifecycle",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "orderId", "in": "path", "required": true},
                    {"type": "string", "enum": ["accept", "prepared", "deliver", "delivered", "cancel"], "name": "action", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Invalid Transition", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/orders/{view}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's orders in a lifecycle view",
                "parameters": [
                    {"type": "string", "enum": ["waiting", "active", "inactive", "to-deliver", "in-delivery"], "name": "view", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/notifications/seen": {
            "put": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark every notification of the caller as seen",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MarkSeenResponse"}}
                }
            }
        }
    },
    "definitions": {
        "CreateOrderRequest": {
            "type": "object",
            "required": ["restaurantId", "lineItems"],
            "properties": {
                "restaurantId": {"type": "string", "format": "uuid"},
                "lineItems": {
                    "type": "array",
                    "minItems": 1,
                    "items": {
                        "type": "object",
                        "required": ["name", "unitPrice"],
                        "properties": {
                            "name": {"type": "string", "minLength": 1},
                            "unitPrice": {"type": "number", "minimum": 0}
                        }
                    }
                }
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "customerId": {"type": "string", "format": "uuid"},
                "restaurantId": {"type": "string", "format": "uuid"},
                "courierId": {"type": "string", "format": "uuid"},
                "status": {"type": "string", "enum": ["Pending", "Accepted", "Prepared", "OutForDelivery", "Delivered", "Cancelled"]},
                "lineItems": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "unitPrice": {"type": "number"}
                        }
                    }
                },
                "totalPrice": {"type": "number"},
                "orderedAt": {"type": "string", "format": "date-time"},
                "deliveredAt": {"type": "string", "format": "date-time"}
            }
        },
        "MarkSeenResponse": {
            "type": "object",
            "properties": {
                "updated": {"type": "integer"}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "orderhub API",
	Description:      "Order lifecycle, live dashboards and notifications for restaurants, couriers and customers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
