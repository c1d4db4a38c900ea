package logger

import "log/slog"

// Error records a single error under the key "error". Nil errors produce an
// empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Route records the route pattern under the key "route".
func Route(pattern string) slog.Attr {
	return slog.String("route", pattern)
}

// ParamField records a parameter field name under the key "field".
func ParamField(name string) slog.Attr {
	return slog.String("field", name)
}
