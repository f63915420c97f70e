package http

import (
	"net/http"
	"strings"

	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
)

// ContentTypeJSON rejects POST and PATCH requests whose body is not
// declared as application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				httputil.WriteError(w, r, apperrors.New("UNSUPPORTED_MEDIA_TYPE",
					"Content-Type must be application/json", http.StatusUnsupportedMediaType, apperrors.ErrInvalidInput), nil)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
