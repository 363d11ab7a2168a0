package handler

import (
	"encoding/json"
	"net/http"
	"time"

	projectModels "conflux/internal/project/models"
	"conflux/internal/raid/compatibility"
	dErrors "conflux/pkg/domain-errors"
)

type incompatibilityResponse struct {
	Incompatibilities []compatibility.Incompatibility `json:"incompatibilities"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
}

// RAiDInfoResponse is the JSON shape of the registry linkage record.
type RAiDInfoResponse struct {
	RAiDId     string    `json:"raidId"`
	Version    int       `json:"version"`
	Checksum   string    `json:"checksum"`
	Dirty      bool      `json:"dirty"`
	LatestSync time.Time `json:"latestSync"`
}

func raidInfoResponse(info *projectModels.RAiDInfo) RAiDInfoResponse {
	return RAiDInfoResponse{
		RAiDId:     info.RAiDId,
		Version:    info.Version,
		Checksum:   info.Checksum,
		Dirty:      info.Dirty,
		LatestSync: info.LatestSync,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError centralizes domain error translation to HTTP responses so all
// handlers emit a consistent JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeUnavailable:
		status = http.StatusBadGateway
	case dErrors.CodeInvalidState, dErrors.CodeInternal:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: err.Error()})
}
