// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Регистрация пользователя", "responses": {"201": {"description": "user"}, "409": {"description": "conflict"}, "422": {"description": "validation"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Вход, выдает JWT", "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}}},
        "/users/me": {
            "get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Профиль текущего пользователя", "responses": {"200": {"description": "user"}}},
            "patch": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Обновить свой профиль", "responses": {"200": {"description": "user"}}}
        },
        "/users/me/invitations": {"get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Входящие приглашения в команды", "responses": {"200": {"description": "invitations"}}}},
        "/users/{userID}": {"get": {"tags": ["users"], "summary": "Публичный профиль пользователя", "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "user"}, "404": {"description": "not found"}}}},
        "/organizations": {"post": {"tags": ["organizations"], "security": [{"BearerAuth": []}], "summary": "Создать организацию", "responses": {"201": {"description": "organization"}}}},
        "/organizations/{orgID}": {"get": {"tags": ["organizations"], "summary": "Организация по ID", "parameters": [{"type": "string", "name": "orgID", "in": "path", "required": true}], "responses": {"200": {"description": "organization"}}}},
        "/organizations/{orgID}/admins": {"post": {"tags": ["organizations"], "security": [{"BearerAuth": []}], "summary": "Назначить администратора организации", "parameters": [{"type": "string", "name": "orgID", "in": "path", "required": true}], "responses": {"200": {"description": "organization"}, "403": {"description": "forbidden"}}}},
        "/hackathons": {
            "get": {"tags": ["hackathons"], "summary": "Список опубликованных хакатонов", "parameters": [{"type": "string", "name": "status", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}, {"type": "integer", "name": "offset", "in": "query"}], "responses": {"200": {"description": "hackathons"}}},
            "post": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Создать хакатон (черновик)", "responses": {"201": {"description": "hackathon"}, "403": {"description": "organizers only"}}}
        },
        "/hackathons/{hackathonID}": {
            "get": {"tags": ["hackathons"], "summary": "Хакатон по ID", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "hackathon"}, "404": {"description": "not found"}}},
            "patch": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Изменить хакатон", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "hackathon"}}}
        },
        "/hackathons/{hackathonID}/status": {"post": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Перевести хакатон в другой статус", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "hackathon"}, "409": {"description": "invalid transition"}}}},
        "/hackathons/{hackathonID}/publish": {"post": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Опубликовать хакатон и открыть регистрацию", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "hackathon"}}}},
        "/hackathons/{hackathonID}/judges": {"post": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Добавить судью", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "hackathon"}}}},
        "/hackathons/{hackathonID}/leaderboard": {"get": {"tags": ["hackathons"], "summary": "Рейтинг команд", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "leaderboard"}}}},
        "/hackathons/{hackathonID}/stats": {"get": {"tags": ["hackathons"], "security": [{"BearerAuth": []}], "summary": "Сводка по хакатону для организаторов", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "stats"}, "403": {"description": "organizers only"}}}},
        "/hackathons/{hackathonID}/registration": {
            "get": {"tags": ["registration"], "security": [{"BearerAuth": []}], "summary": "Статус регистрации текущего пользователя", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "status"}}},
            "post": {"tags": ["registration"], "security": [{"BearerAuth": []}], "summary": "Зарегистрироваться на хакатон", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"201": {"description": "outcome"}, "409": {"description": "closed, full or already registered"}}},
            "delete": {"tags": ["registration"], "security": [{"BearerAuth": []}], "summary": "Отменить регистрацию или заявку", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"204": {"description": "unregistered"}}}
        },
        "/hackathons/{hackathonID}/pending/{userID}/approve": {"post": {"tags": ["registration"], "security": [{"BearerAuth": []}], "summary": "Одобрить заявку", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}, {"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"204": {"description": "approved"}}}},
        "/hackathons/{hackathonID}/pending/{userID}/reject": {"post": {"tags": ["registration"], "security": [{"BearerAuth": []}], "summary": "Отклонить заявку", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}, {"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"204": {"description": "rejected"}}}},
        "/hackathons/{hackathonID}/teams": {
            "get": {"tags": ["teams"], "summary": "Команды хакатона", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"200": {"description": "teams"}}},
            "post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Создать команду", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"201": {"description": "team"}}}
        },
        "/teams/{teamID}": {"get": {"tags": ["teams"], "summary": "Команда по ID", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/members": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Лидер добавляет участника", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/members/{userID}": {"delete": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Исключить участника или выйти", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}, {"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "removed"}}}},
        "/teams/{teamID}/leader": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Передать лидерство", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/notes": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Заметка на доске команды", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"201": {"description": "note"}}}},
        "/teams/{teamID}/withdraw": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Снять команду с хакатона", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/disqualify": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Дисквалифицировать команду", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/awards": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Наградить команду", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}}}},
        "/teams/{teamID}/logo": {"post": {"tags": ["teams"], "security": [{"BearerAuth": []}], "summary": "Загрузить логотип команды", "consumes": ["multipart/form-data"], "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}, {"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "team"}, "503": {"description": "storage not configured"}}}},
        "/teams/{teamID}/invitations": {"post": {"tags": ["invitations"], "security": [{"BearerAuth": []}], "summary": "Пригласить в команду", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"201": {"description": "invitation"}}}},
        "/teams/{teamID}/invitations/accept": {"post": {"tags": ["invitations"], "security": [{"BearerAuth": []}], "summary": "Принять приглашение команды", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "team"}, "410": {"description": "expired"}}}},
        "/teams/{teamID}/invitations/decline": {"post": {"tags": ["invitations"], "security": [{"BearerAuth": []}], "summary": "Отклонить приглашение команды", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"204": {"description": "declined"}}}},
        "/invitations/{token}/accept": {"post": {"tags": ["invitations"], "security": [{"BearerAuth": []}], "summary": "Принять приглашение по ссылке", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"200": {"description": "team"}, "410": {"description": "expired"}}}},
        "/teams/{teamID}/submission": {"put": {"tags": ["submissions"], "security": [{"BearerAuth": []}], "summary": "Редактировать черновик проекта", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "submission"}}}},
        "/teams/{teamID}/submission/finalize": {"post": {"tags": ["submissions"], "security": [{"BearerAuth": []}], "summary": "Отправить проект на оценку", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "submission"}}}},
        "/teams/{teamID}/submission/media": {"post": {"tags": ["submissions"], "security": [{"BearerAuth": []}], "summary": "Загрузить скриншот проекта", "consumes": ["multipart/form-data"], "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}, {"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "submission"}}}},
        "/teams/{teamID}/scores": {"post": {"tags": ["judging"], "security": [{"BearerAuth": []}], "summary": "Оценка судьи", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "score"}, "403": {"description": "not a judge"}}}},
        "/ws/hackathons/{hackathonID}": {"get": {"tags": ["realtime"], "summary": "Поток событий хакатона (WebSocket)", "parameters": [{"type": "string", "name": "hackathonID", "in": "path", "required": true}], "responses": {"101": {"description": "switching protocols"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hackathon Platform API",
	Description:      "Hackathon registration, teams, submissions and judging.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
