// Package v1handler implements the version 1 JSON endpoints of the URL
// normalization API.
package v1handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"urlnorm/internal/normalizer"
	"urlnorm/pkg/logger"
	"urlnorm/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes is used when Options.MaxBodyBytes is not positive.
const DefaultMaxBodyBytes = 1 << 20

// Deps are the services backing the v1 endpoints.
type Deps struct {
	Normalizer normalizer.Normalizer
}

// Options configure request handling.
type Options struct {
	// MaxBodyBytes limits the size of request bodies.
	MaxBodyBytes int64
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, options: options}
}

// Register mounts the v1 routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/normalize", h.Normalize)
	mux.HandleFunc("POST /v1/normalize/batch", h.NormalizeBatch)
	mux.HandleFunc("POST /v1/equal", h.Equal)
}

// ErrorResponse is the body and status code sent for a failed request.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// Encode writes the response body as {"code": ..., "message": ...}.
func (r ErrorResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(r.Code)
	e.FieldStart("message")
	e.Str(r.Message)
	e.ObjEnd()
}

// NewError maps err to an ErrorResponse. Semantic errors keep their message;
// anything else is logged and reported as an internal error.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	var (
		status int
		msg    = err.Error()
		kind   = serrors.KindOf(err)
	)
	switch kind {
	case serrors.ErrBadRequest, serrors.ErrInvalidURL, serrors.ErrOutOfRange:
		status = http.StatusBadRequest
	case serrors.ErrTimeout:
		status = http.StatusGatewayTimeout
	default:
		logger.Error(ctx, "could not handle request", zap.Error(err))
		status, kind, msg = http.StatusInternalServerError, serrors.ErrInternal, "internal error"
	}

	// a bare kind has nothing more specific to say than its name
	if err == kind { //nolint: errorlint
		msg = http.StatusText(status)
	}

	return &ErrorResponse{
		StatusCode: status,
		Code:       kind.Error(),
		Message:    msg,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, res.Encode)
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// readBody reads the whole request body, enforcing the size limit.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return body, nil
}
