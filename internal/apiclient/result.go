package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Status discriminates the closed set of outcomes a dashboard call can
// produce. Callers are expected to switch over every value; there is no
// variant that silently succeeds.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusUnauthorized    Status = "unauthorized"
	StatusForbidden       Status = "forbidden"
	StatusNotFound        Status = "not_found"
	StatusConflict        Status = "conflict"
	StatusValidationError Status = "validation_error"
	StatusError           Status = "error"
)

// Result is the single return shape of every dashboard operation.
//
//   - success:          Data holds the fresh resource (zero value on 204).
//   - conflict:         Current holds the authoritative snapshot. When the
//     server omitted it and recovery failed, Current echoes
//     the submitted values and Unconfirmed is set so the UI
//     can label the snapshot as unverified.
//   - validation_error: Detail carries the server's (or the pre-flight
//     validator's) field errors unmodified.
//   - forbidden/error:  Message holds a human-readable explanation.
//
// Only the error variant represents a transient condition; it is the one
// outcome a caller may offer a manual retry for.
type Result[T any] struct {
	Status      Status
	Data        T
	Current     *T
	Unconfirmed bool
	Detail      json.RawMessage
	Message     string
}

// Invalid builds a validation_error result from pre-flight field errors,
// so client-side rejections surface through the same closed variant set
// as server-side ones.
func Invalid[T any](detail any) Result[T] {
	raw, err := json.Marshal(detail)
	if err != nil {
		return Result[T]{Status: StatusError, Message: fmt.Sprintf("encode validation detail: %v", err)}
	}
	return Result[T]{Status: StatusValidationError, Detail: raw}
}

// errorEnvelope is the backend's error body shape: {"detail": ...} with an
// optional code/message wrapper around it.
type errorEnvelope struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// MapResult interprets a raw exchange as one closed variant. It never
// panics: malformed bodies and unexpected statuses degrade to the error
// variant, and an executor failure becomes the error variant here rather
// than propagating.
func MapResult[T any](ex Exchange, err error) Result[T] {
	if err != nil {
		return Result[T]{Status: StatusError, Message: err.Error()}
	}

	switch ex.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data T
		if len(ex.Body) > 0 {
			if uerr := json.Unmarshal(ex.Body, &data); uerr != nil {
				return Result[T]{Status: StatusError, Message: fmt.Sprintf("malformed response body (status %d): %v", ex.StatusCode, uerr)}
			}
		}
		return Result[T]{Status: StatusSuccess, Data: data}

	case http.StatusNoContent:
		return Result[T]{Status: StatusSuccess}

	case http.StatusUnauthorized:
		return Result[T]{Status: StatusUnauthorized}

	case http.StatusForbidden:
		res := Result[T]{Status: StatusForbidden}
		var env errorEnvelope
		if json.Unmarshal(ex.Body, &env) == nil && len(env.Detail) > 0 {
			var msg string
			if json.Unmarshal(env.Detail, &msg) == nil {
				res.Message = msg
			}
		}
		return res

	case http.StatusNotFound:
		return Result[T]{Status: StatusNotFound}

	case http.StatusConflict:
		res := Result[T]{Status: StatusConflict}
		var env struct {
			Detail struct {
				Current *T `json:"current"`
			} `json:"detail"`
		}
		if json.Unmarshal(ex.Body, &env) == nil && env.Detail.Current != nil {
			res.Current = env.Detail.Current
		}
		return res

	case http.StatusUnprocessableEntity:
		res := Result[T]{Status: StatusValidationError}
		var env errorEnvelope
		if json.Unmarshal(ex.Body, &env) == nil && len(env.Detail) > 0 {
			res.Detail = env.Detail
		} else {
			res.Detail = ex.Body
		}
		return res

	default:
		return Result[T]{Status: StatusError, Message: fmt.Sprintf("unexpected API status %d", ex.StatusCode)}
	}
}
