package server

import (
	"encoding/json"
	"net/http"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/recipe"
)

type errorBody struct {
	Error string `json:"error"`
}

// Respond maps an envelope to the HTTP contract shared by every
// request/response shell: 200 with the bare document, 400 when the URL was
// missing, 500 for any other failure with {"error": message}.
func Respond(env recipe.Envelope) (int, []byte) {
	if env.Success {
		doc := recipe.Document{}
		if env.Data != nil {
			doc = *env.Data
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return http.StatusInternalServerError, errorJSON(err.Error())
		}
		return http.StatusOK, body
	}
	status := http.StatusInternalServerError
	if adapter.IsClientError(env.Err) {
		status = http.StatusBadRequest
	}
	return status, errorJSON(env.Error)
}

func errorJSON(msg string) []byte {
	b, err := json.Marshal(errorBody{Error: msg})
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return b
}
