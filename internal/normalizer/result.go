package normalizer

import (
	"urlnorm/pkg/serrors"
	"urlnorm/pkg/urlnorm"

	"github.com/go-faster/jx"
)

// Result is the outcome of normalizing a single URL.
type Result struct {
	// Input is the URL exactly as it was received.
	Input string
	// Normalized is the reassembled normal form of Input.
	Normalized string
	// Components holds the normalized parts Normalized was built from.
	Components urlnorm.Components
}

// Encode writes r as a JSON object.
func (r Result) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("input")
	e.Str(r.Input)
	e.FieldStart("normalized")
	e.Str(r.Normalized)
	e.FieldStart("components")
	encodeComponents(e, r.Components)
	e.ObjEnd()
}

func encodeComponents(e *jx.Encoder, c urlnorm.Components) {
	e.ObjStart()
	e.FieldStart("scheme")
	e.Str(c.Scheme)
	e.FieldStart("authority")
	e.Str(c.Authority)
	e.FieldStart("path")
	e.Str(c.Path)
	e.FieldStart("params")
	e.Str(c.Params)
	e.FieldStart("query")
	e.Str(c.Query)
	e.FieldStart("fragment")
	e.Str(c.Fragment)
	e.ObjEnd()
}

// BatchItem is one entry of a batch normalization. Exactly one of Normalized
// and Err is meaningful.
type BatchItem struct {
	Input      string
	Normalized string
	Err        error
}

// Encode writes the item as a JSON object. Failed items carry an "error"
// object instead of "normalized".
func (b BatchItem) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("input")
	e.Str(b.Input)
	if b.Err != nil {
		e.FieldStart("error")
		EncodeError(e, b.Err)
	} else {
		e.FieldStart("normalized")
		e.Str(b.Normalized)
	}
	e.ObjEnd()
}

// EncodeError writes err as {"code": ..., "message": ...}. The code is the
// outermost semantic kind of err, INTERNAL when it has none.
func EncodeError(e *jx.Encoder, err error) {
	code := serrors.ErrInternal.Error()
	if k := serrors.KindOf(err); k != nil {
		code = k.Error()
	}

	e.ObjStart()
	e.FieldStart("code")
	e.Str(code)
	e.FieldStart("message")
	e.Str(err.Error())
	e.ObjEnd()
}
