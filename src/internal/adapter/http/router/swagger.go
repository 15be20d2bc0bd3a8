package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Banco Digital API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banco Digital API",
    "version": "1.0.0"
  },
  "paths": {
    "/login": {
      "post": {
        "summary": "Log in with user id and password",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["userId", "password"],
                "properties": {
                  "userId": {"type": "string", "example": "12345678"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Session created"},
          "400": {"description": "Invalid request body"},
          "401": {"description": "Invalid credentials"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/logout": {
      "post": {
        "summary": "End the current session",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Session ended"},
          "401": {"description": "Unauthorized or session not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts": {
      "get": {
        "summary": "Account overview for the current session",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "401": {"description": "Unauthorized or session not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/select-account": {
      "post": {
        "summary": "Select the account used for transfers",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["index"],
                "properties": {
                  "index": {"type": "integer", "minimum": 0}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account selected"},
          "400": {"description": "Index out of range"},
          "409": {"description": "Transfer in progress"},
          "401": {"description": "Unauthorized or session not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/open-transfer": {
      "post": {
        "summary": "Open the transfer form",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Transfer form opened"},
          "401": {"description": "Unauthorized or session not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfer-funds": {
      "post": {
        "summary": "Submit a transfer from the selected account",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["destinationAccount", "amount", "concept", "pin"],
                "properties": {
                  "destinationAccount": {"type": "string", "example": "0009876543210"},
                  "amount": {"type": "string", "example": "100.00"},
                  "concept": {"type": "string"},
                  "pin": {"type": "string"},
                  "international": {"type": "boolean"},
                  "swiftCode": {"type": "string", "example": "CHASUS33"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer committed, remotely or in demo mode"},
          "400": {"description": "Validation error"},
          "401": {"description": "Invalid PIN or session not found"},
          "409": {"description": "Transfer in progress"},
          "422": {"description": "Insufficient funds or rejected by the gateway"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/notifications": {
      "get": {
        "summary": "Drain pending notifications",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Session-ID",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Notifications fetched"},
          "401": {"description": "Unauthorized or session not found"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
