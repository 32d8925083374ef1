package http

import (
	"context"

	"github.com/example/conference-scheduler/internal/application"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	eventNameContextKey contextKey = "event_name"
	roomCodeContextKey  contextKey = "room_code"
	usernameContextKey  contextKey = "username"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithEventName injects the event name resolved from the request path.
func ContextWithEventName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, eventNameContextKey, name)
}

// EventNameFromContext extracts an event name previously associated with the context.
func EventNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(eventNameContextKey).(string)
	return name, ok
}

// ContextWithRoomCode injects the room code resolved from the request path.
func ContextWithRoomCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, roomCodeContextKey, code)
}

// RoomCodeFromContext extracts a room code previously associated with the context.
func RoomCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(roomCodeContextKey).(string)
	return code, ok
}

// ContextWithUsername injects the username resolved from the request path.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

// UsernameFromContext extracts a username previously associated with the context.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey).(string)
	return username, ok
}
