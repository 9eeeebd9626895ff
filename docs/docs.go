// Package docs registra la especificación OpenAPI que sirve /swagger.
// Se mantiene a mano: al tocar un handler, actualizar su entrada acá.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Listar mis mascotas", "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}},
            "post": {"tags": ["pets"], "summary": "Registrar mascota", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}, "401": {"description": "unauthorized"}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Obtener mascota", "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "404": {"description": "pet not found"}}},
            "patch": {"tags": ["pets"], "summary": "Editar mascota", "responses": {"200": {"description": "OK"}, "400": {"description": "invalid input"}, "404": {"description": "pet not found"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota y su historial", "responses": {"204": {"description": "No Content"}, "404": {"description": "pet not found"}}}
        },
        "/pets/{petID}/records": {
            "get": {"tags": ["records"], "summary": "Listar registros médicos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["records"], "summary": "Crear registro médico", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid input"}}}
        },
        "/pets/{petID}/records/{recordID}": {
            "get": {"tags": ["records"], "summary": "Obtener registro", "responses": {"200": {"description": "OK"}, "404": {"description": "record not found"}}},
            "patch": {"tags": ["records"], "summary": "Editar registro", "responses": {"200": {"description": "OK"}, "409": {"description": "type is immutable"}}},
            "delete": {"tags": ["records"], "summary": "Borrar registro", "responses": {"204": {"description": "No Content"}}}
        },
        "/pets/{petID}/appointments": {
            "get": {"tags": ["appointments"], "summary": "Listar citas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["appointments"], "summary": "Agendar cita", "responses": {"201": {"description": "Created"}}}
        },
        "/pets/{petID}/appointments/{appointmentID}": {
            "get": {"tags": ["appointments"], "summary": "Obtener cita", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["appointments"], "summary": "Editar cita", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["appointments"], "summary": "Borrar cita", "responses": {"204": {"description": "No Content"}}}
        },
        "/pets/{petID}/profile": {
            "get": {"tags": ["profile"], "summary": "Ficha compartible de la mascota", "responses": {"200": {"description": "OK"}}}
        },
        "/pets/{petID}/qr": {
            "get": {"tags": ["profile"], "summary": "QR de la ficha", "produces": ["image/png"], "responses": {"200": {"description": "PNG"}}}
        },
        "/diary": {
            "get": {"tags": ["diary"], "summary": "Listar entradas del diario", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["diary"], "summary": "Crear entrada", "responses": {"201": {"description": "Created"}}}
        },
        "/diary/{entryID}": {
            "get": {"tags": ["diary"], "summary": "Obtener entrada", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["diary"], "summary": "Editar entrada", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["diary"], "summary": "Borrar entrada", "responses": {"204": {"description": "No Content"}}}
        },
        "/community/users": {
            "get": {"tags": ["community"], "summary": "Usuarios de la comunidad", "responses": {"200": {"description": "OK"}}}
        },
        "/community/posts": {
            "get": {"tags": ["community"], "summary": "Feed", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["community"], "summary": "Publicar", "responses": {"201": {"description": "Created"}}}
        },
        "/community/posts/{postID}": {
            "get": {"tags": ["community"], "summary": "Obtener publicación", "responses": {"200": {"description": "OK"}}}
        },
        "/community/posts/{postID}/interaction": {
            "post": {"tags": ["community"], "summary": "Like / dislike (toggle)", "responses": {"200": {"description": "OK"}}}
        },
        "/community/posts/{postID}/comments": {
            "get": {"tags": ["community"], "summary": "Comentarios", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["community"], "summary": "Comentar", "responses": {"201": {"description": "Created"}}}
        },
        "/assistant/chat": {
            "post": {"tags": ["assistant"], "summary": "Preguntar al asistente", "responses": {"200": {"description": "OK"}, "503": {"description": "assistant not configured"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Care API",
	Description:      "Mascotas, historial médico, diario, citas y comunidad.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
