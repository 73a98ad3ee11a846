package jellyfin

import (
	"net/http"
)

// HTTPError is the problem-details style body Jellyfin clients expect
// on non-2xx responses.
type HTTPError struct {
	Status  int                 `json:"status"`
	Type    string              `json:"type,omitempty"`
	Title   string              `json:"title,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}

// rfc9110Sections maps status codes to the RFC 9110 section that
// defines them, to build the problem type URL.
var rfc9110Sections = map[int]string{
	http.StatusBadRequest:                   "15.5.1",
	http.StatusUnauthorized:                 "15.5.2",
	http.StatusForbidden:                    "15.5.4",
	http.StatusNotFound:                     "15.5.5",
	http.StatusMethodNotAllowed:             "15.5.6",
	http.StatusNotAcceptable:                "15.5.7",
	http.StatusRequestTimeout:               "15.5.9",
	http.StatusConflict:                     "15.5.10",
	http.StatusGone:                         "15.5.11",
	http.StatusLengthRequired:               "15.5.12",
	http.StatusPreconditionFailed:           "15.5.13",
	http.StatusRequestEntityTooLarge:        "15.5.14",
	http.StatusRequestURITooLong:            "15.5.15",
	http.StatusUnsupportedMediaType:         "15.5.16",
	http.StatusRequestedRangeNotSatisfiable: "15.5.17",
	http.StatusExpectationFailed:            "15.5.18",
	http.StatusInternalServerError:          "15.6.1",
	http.StatusNotImplemented:               "15.6.2",
	http.StatusBadGateway:                   "15.6.3",
	http.StatusServiceUnavailable:           "15.6.4",
	http.StatusGatewayTimeout:               "15.6.5",
}

func problemType(status int) string {
	if section, ok := rfc9110Sections[status]; ok {
		return "https://tools.ietf.org/html/rfc9110#section-" + section
	}
	return ""
}

// apierror writes a structured error response.
func apierror(w http.ResponseWriter, msg string, status int) {
	w.WriteHeader(status)
	serveJSON(HTTPError{
		Status: status,
		Type:   problemType(status),
		Title:  msg,
	}, w)
}
