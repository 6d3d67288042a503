package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize bounds request bodies. Log appends carry a handful of short
// answers; 1MB leaves generous headroom.
const maxBodySize = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// The body size limit needs w so oversized requests get a proper 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
