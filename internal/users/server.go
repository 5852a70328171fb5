package users

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// ParseKind accepts the menu numbers as well as the names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "native":
		return KindNative, nil
	case "2", "router":
		return KindRouter, nil
	}
	return "", fmt.Errorf("invalid choice %q", s)
}

// Handler builds the server for kind.
func Handler(kind Kind, log *slog.Logger) (http.Handler, error) {
	switch kind {
	case KindNative:
		return Native(log), nil
	case KindRouter:
		return NewRouter(log), nil
	}
	return nil, fmt.Errorf("unknown server kind %q", kind)
}
