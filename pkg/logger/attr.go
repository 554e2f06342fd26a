package logger

import "log/slog"

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Reason records why a token was rejected under "reason".
func Reason(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("reason", err.Error())
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// PrimaryKey records a user primary key under field, which is the configured
// primary key field name. Nil keys produce an empty Attr.
func PrimaryKey(field string, pk any) slog.Attr {
	if pk == nil {
		return slog.Attr{}
	}
	if field == "" {
		field = "pk"
	}
	return slog.Any(field, pk)
}

// Scope records the token scope under "scope", naming the empty scope
// "default" so it stays visible in text output.
func Scope(scope string) slog.Attr {
	if scope == "" {
		scope = "default"
	}
	return slog.String("scope", scope)
}

// Age records a token age in whole seconds under "age_seconds".
func Age(seconds int64) slog.Attr {
	return slog.Int64("age_seconds", seconds)
}
