package middleware

import (
	"net/http"
	"net/http/httptest"
)

// RequestWithMiddleware прогоняет запрос через handler, обернутый в цепочку middlewares,
// и возвращает записанный ответ. Первый middleware в списке оказывается внешним
func RequestWithMiddleware(
	handler http.Handler,
	req *http.Request,
	middlewares ...func(http.Handler) http.Handler,
) *httptest.ResponseRecorder {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
