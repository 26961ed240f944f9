package gateway

import (
	"encoding/json"
	"strings"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
)

// The backend is not consistent about its error envelope: some handlers
// return {"message": "..."}, others {"error": "..."} or a nested
// {"error": {"message": "..."}}. Pull out whichever is present so the
// message reaches the user verbatim.
func backendMessage(raw []byte) string {
	var flat struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &flat); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if flat.Message != "" {
		return flat.Message
	}
	if len(flat.Error) > 0 {
		var s string
		if err := json.Unmarshal(flat.Error, &s); err == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(flat.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func statusError(status int, raw []byte) error {
	return apierr.FromStatus(status, backendMessage(raw))
}

func apiNetwork(err error) error {
	return apierr.Network("could not reach the server", err)
}
