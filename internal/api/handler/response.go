package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
)

// writeJSON writes v as the body. HTML escaping is off so pal names with
// symbols and non-Latin display names come back verbatim.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

// writeAPIError writes the error envelope. Server faults are logged as
// errors, rejected requests at debug level.
func writeAPIError(w http.ResponseWriter, logger *slog.Logger, e *apierr.Error) {
	if logger != nil {
		attrs := []slog.Attr{
			slog.String("code", string(e.Code())),
			slog.Int("status", e.Status()),
		}
		if e.Param() != "" {
			attrs = append(attrs, slog.String("param", e.Param()))
		}
		if e.Status() >= 500 {
			attrs = append(attrs, slog.String("error", e.Error()))
			logger.LogAttrs(context.Background(), slog.LevelError, e.Message(), attrs...)
		} else {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "request rejected", attrs...)
		}
	}
	writeJSON(w, e.Status(), e.Response())
}
