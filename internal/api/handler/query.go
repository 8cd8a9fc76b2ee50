package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// parseCSV splits a comma-separated list. Pal names are case-sensitive, so
// entries are only trimmed.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func intQuery(r *http.Request, key string, defaultVal, maxVal int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return defaultVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func boolQuery(r *http.Request, key string, defaultVal bool) (bool, *apierr.Error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierr.InvalidBool(key)
	}
	return b, nil
}

func sexQuery(r *http.Request, key string) (models.Sex, *apierr.Error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return models.SexAny, nil
	}
	sex := models.ParseSex(raw)
	if sex == models.SexAny {
		return sex, apierr.InvalidSex(key)
	}
	return sex, nil
}

func requiredQuery(r *http.Request, key string) (string, *apierr.Error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return "", apierr.ParamRequired(key)
	}
	return v, nil
}

// pathName returns a URL parameter with percent-escapes decoded, since pal
// names may contain spaces.
func pathName(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
