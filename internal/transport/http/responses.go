package httptransport

import (
	"encoding/json"
	"net/http"

	"aerodns/internal/runner"
	pkgerrors "aerodns/pkg/errors"
)

// tickResponse is the JSON shape of a manual tick trigger.
type tickResponse struct {
	Results []tickResult `json:"results"`
}

type tickResult struct {
	Tail      string          `json:"tail"`
	Outcome   string          `json:"outcome"`
	Region    string          `json:"region,omitempty"`
	OverWater bool            `json:"over_water,omitempty"`
	Sync      []syncOperation `json:"sync,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type syncOperation struct {
	Op     string `json:"op"`
	Region string `json:"region"`
	ListID string `json:"list_id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func newTickResponse(results []runner.EntityResult) tickResponse {
	out := tickResponse{Results: make([]tickResult, 0, len(results))}
	for _, res := range results {
		tr := tickResult{
			Tail:      res.Tail,
			Outcome:   string(res.Outcome),
			Region:    res.Region.String(),
			OverWater: res.OverWater,
		}
		if res.Err != nil {
			tr.Error = res.Err.Error()
		}
		for _, op := range res.Operations {
			so := syncOperation{
				Op:     string(op.Op),
				Region: op.Region.String(),
				ListID: op.ListID,
				Status: string(op.Status),
			}
			if op.Err != nil {
				so.Error = op.Err.Error()
			}
			tr.Sync = append(tr.Sync, so)
		}
		out.Results = append(out.Results, tr)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so all
// handlers share one JSON error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := pkgerrors.CodeOf(err)
	status := pkgerrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": string(code)})
}
