package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/POS-ReservationService/internal/authz"
)

// Authorize проверяет роль вызывающего по таблице разрешений.
// Ключ проверки - (HTTP метод, шаблон маршрута), не фактический URL.
// Неизвестные маршруты запрещены по умолчанию.
func Authorize(table *authz.Table) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				respondError(w, http.StatusForbidden, "роль пользователя не определена")
				return
			}

			route := mux.CurrentRoute(r)
			if route == nil {
				respondError(w, http.StatusForbidden, "маршрут не определен")
				return
			}

			template, err := route.GetPathTemplate()
			if err != nil {
				respondError(w, http.StatusForbidden, "маршрут не определен")
				return
			}

			if !table.IsAllowed(r.Method, template, role) {
				respondError(w, http.StatusForbidden, "доступ запрещен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
