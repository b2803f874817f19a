// Package lambda exposes the adapter behind an API Gateway proxy
// integration. Status codes and bodies match the HTTP shell.
package lambda

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/server"
)

// Handler serves API Gateway proxy events.
type Handler struct {
	Adapter server.Handler
	Logger  zerolog.Logger
}

// Handle never returns a Go error for request-level failures; those are
// encoded in the response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != "" && !strings.EqualFold(req.HTTPMethod, http.MethodGet) {
		return response(http.StatusMethodNotAllowed, []byte(`{"error":"method not allowed"}`), "GET"), nil
	}
	env := h.Adapter.Handle(ctx, adapter.Request{
		URL:       queryParam(req, "url"),
		UserAgent: header(req.Headers, "User-Agent"),
	})
	status, body := server.Respond(env)
	h.Logger.Info().
		Str("request_id", req.RequestContext.RequestID).
		Int("status", status).
		Msg("request")
	return response(status, body, ""), nil
}

func queryParam(req events.APIGatewayProxyRequest, key string) string {
	if v, ok := req.QueryStringParameters[key]; ok {
		return v
	}
	if vs := req.MultiValueQueryStringParameters[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// header looks name up case-insensitively; API Gateway passes header
// names the way the client sent them.
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func response(status int, body []byte, allow string) events.APIGatewayProxyResponse {
	h := map[string]string{"Content-Type": "application/json"}
	if allow != "" {
		h["Allow"] = allow
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    h,
		Body:       string(body),
	}
}
