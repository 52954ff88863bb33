package v1handler

import (
	"net/http"

	"urlnorm/pkg/serrors"

	"github.com/go-faster/jx"
)

// NormalizeRequest is the body of POST /v1/normalize.
type NormalizeRequest struct {
	URL string
}

// Decode reads the request from d. The url field is required.
func (req *NormalizeRequest) Decode(d *jx.Decoder) error {
	seen := false
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "url" {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err //nolint: wrapcheck
		}
		req.URL, seen = v, true

		return nil
	}); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if !seen {
		return serrors.With(serrors.ErrBadRequest, `missing "url"`)
	}

	return nil
}

// BatchRequest is the body of POST /v1/normalize/batch.
type BatchRequest struct {
	URLs []string
}

// Decode reads the request from d. The urls field is required.
func (req *BatchRequest) Decode(d *jx.Decoder) error {
	seen := false
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "urls" {
			return d.Skip()
		}
		seen = true

		return d.Arr(func(d *jx.Decoder) error {
			v, err := d.Str()
			if err != nil {
				return err //nolint: wrapcheck
			}
			req.URLs = append(req.URLs, v)

			return nil
		})
	}); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if !seen {
		return serrors.With(serrors.ErrBadRequest, `missing "urls"`)
	}

	return nil
}

// EqualRequest is the body of POST /v1/equal.
type EqualRequest struct {
	A string
	B string
}

// Decode reads the request from d. Both a and b are required.
func (req *EqualRequest) Decode(d *jx.Decoder) error {
	var seenA, seenB bool
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "a":
			req.A, err = d.Str()
			seenA = true
		case "b":
			req.B, err = d.Str()
			seenB = true
		default:
			err = d.Skip()
		}

		return err //nolint: wrapcheck
	}); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if !seenA || !seenB {
		return serrors.With(serrors.ErrBadRequest, `both "a" and "b" are required`)
	}

	return nil
}

type decoder interface {
	Decode(d *jx.Decoder) error
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req decoder) error {
	body, err := h.readBody(w, r)
	if err != nil {
		return err
	}

	return req.Decode(jx.DecodeBytes(body))
}

// Normalize handles POST /v1/normalize.
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	res, err := h.deps.Normalizer.Normalize(r.Context(), req.URL)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, res.Encode)
}

// NormalizeBatch handles POST /v1/normalize/batch. Invalid URLs are reported
// per item; the response is 200 as long as the batch itself was processed.
func (h *Handler) NormalizeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	items, err := h.deps.Normalizer.NormalizeBatch(r.Context(), req.URLs)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("items")
		e.ArrStart()
		for _, item := range items {
			item.Encode(e)
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

// Equal handles POST /v1/equal.
func (h *Handler) Equal(w http.ResponseWriter, r *http.Request) {
	var req EqualRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	equal, err := h.deps.Normalizer.Equal(r.Context(), req.A, req.B)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("equal")
		e.Bool(equal)
		e.ObjEnd()
	})
}

