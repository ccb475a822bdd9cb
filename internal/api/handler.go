package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/services"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/pkg"
)

type Handler struct {
	service *services.Service
}

func NewHandler(service *services.Service) *Handler {
	return &Handler{service: service}
}

type Result struct {
	Data   any `json:"data"`
	Status int `json:"-"`
}

func NewResult[T any](data T) *Result {
	return &Result{Data: data, Status: http.StatusOK}
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type handlerFunc func(r *http.Request) (*Result, *types.Error)

// registerHandler adapts a handlerFunc to net/http, writing the result or the
// error as JSON.
func registerHandler(handler handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, result.Status, result)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, r, err.StatusCode, ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

// asError converts an error returned by the service into the api error type.
func asError(err error) *types.Error {
	var typedErr *types.Error
	if errors.As(err, &typedErr) {
		return typedErr
	}
	return types.NewInternalServiceError(err)
}

func decodeBody(r *http.Request, v any) *types.Error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return types.Errorf(types.BadRequest, "invalid request body: %v", err)
	}
	return nil
}

func parseAddress(name, value string) (common.Address, *types.Error) {
	addr, err := pkg.ParseAddress(value)
	if err != nil {
		return common.Address{}, types.Errorf(types.BadRequest, "%s: %v", name, err)
	}
	return addr, nil
}

func parseHash(name, value string) (common.Hash, *types.Error) {
	raw, err := hexutil.Decode(value)
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, types.Errorf(types.BadRequest, "%s: invalid 32 byte hash %q", name, value)
	}
	return common.BytesToHash(raw), nil
}

func parseTokenID(value string) (uint64, *types.Error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, types.Errorf(types.BadRequest, "invalid token id %q", value)
	}
	return id, nil
}

func urlAddress(r *http.Request) (common.Address, *types.Error) {
	return parseAddress("address", chi.URLParam(r, "address"))
}

type HealthCheckPublic struct {
	Status string `json:"status"`
	Time   int64  `json:"time"`
}

func (h *Handler) HealthCheck(r *http.Request) (*Result, *types.Error) {
	if err := h.service.Ping(r.Context()); err != nil {
		return nil, asError(err)
	}
	return NewResult(HealthCheckPublic{
		Status: "ok",
		Time:   h.service.Now().Unix(),
	}), nil
}
