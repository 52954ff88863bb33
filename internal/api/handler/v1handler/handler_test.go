package v1handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"urlnorm/internal/api/handler/v1handler"
	"urlnorm/internal/normalizer"
	mocknormalizer "urlnorm/internal/normalizer/mock"
	"urlnorm/pkg/logger"
	"urlnorm/pkg/serrors"
	"urlnorm/pkg/urlnorm"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	if err := logger.Setup(logger.DevelopmentEnvironment, "fatal"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T, opts v1handler.Options) (*mocknormalizer.MockNormalizer, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	n := mocknormalizer.NewMockNormalizer(ctrl)
	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Normalizer: n}, opts).Register(mux)

	return n, mux
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Code)
	require.Equal(t, "internal error", res.Message)
}

func TestNewError_KindSentinelDirect(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.ErrTimeout)
	require.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
	require.Equal(t, serrors.ErrTimeout.Error(), res.Code)
	require.Equal(t, "Gateway Timeout", res.Message)
}

func TestNewError_InvalidURLKeepsMessage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.With(serrors.ErrInvalidURL, "missing URL scheme"))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, "INVALID_URL", res.Code)
	require.Equal(t, "missing URL scheme", res.Message)
}

func TestNewError_BadRequestWrap(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	err := serrors.Wrap(serrors.ErrBadRequest, errors.New("EOF"), "invalid request body")
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, "BAD_REQUEST", res.Code)
	require.Equal(t, "invalid request body: EOF", res.Message)
}

func TestNormalize_OK(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().Normalize(gomock.Any(), "HTTP://Example.com").Return(&normalizer.Result{
		Input:      "HTTP://Example.com",
		Normalized: "http://example.com/",
		Components: urlnorm.Components{Scheme: "http", Authority: "example.com", Path: "/"},
	}, nil)

	rec := do(h, http.MethodPost, "/v1/normalize", `{"url":"HTTP://Example.com","extra":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{
		"input": "HTTP://Example.com",
		"normalized": "http://example.com/",
		"components": {"scheme":"http","authority":"example.com","path":"/","params":"","query":"","fragment":""}
	}`, rec.Body.String())
}

func TestNormalize_InvalidURL(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().Normalize(gomock.Any(), "http://localhost/").
		Return(nil, serrors.With(serrors.ErrInvalidURL, `host "localhost" is not valid`))

	rec := do(h, http.MethodPost, "/v1/normalize", `{"url":"http://localhost/"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"code":"INVALID_URL","message":"host \"localhost\" is not valid"}`, rec.Body.String())
}

func TestNormalize_BadBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "not an object", body: `["http://a.com/"]`},
		{name: "missing url", body: `{"uri":"http://a.com/"}`},
		{name: "url not a string", body: `{"url":42}`},
		{name: "truncated", body: `{"url":"http://a.com/"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, h := newTestHandler(t, v1handler.Options{})

			rec := do(h, http.MethodPost, "/v1/normalize", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
		})
	}
}

func TestNormalize_BodyTooLarge(t *testing.T) {
	_, h := newTestHandler(t, v1handler.Options{MaxBodyBytes: 16})

	rec := do(h, http.MethodPost, "/v1/normalize", `{"url":"http://example.com/a/long/path"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "request body exceeds 16 bytes")
}

func TestNormalize_MethodNotAllowed(t *testing.T) {
	_, h := newTestHandler(t, v1handler.Options{})

	rec := do(h, http.MethodGet, "/v1/normalize", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNormalizeBatch_OK(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().NormalizeBatch(gomock.Any(), []string{"http://Example.com", "noscheme"}).Return([]normalizer.BatchItem{
		{Input: "http://Example.com", Normalized: "http://example.com/"},
		{Input: "noscheme", Err: serrors.With(serrors.ErrInvalidURL, "missing URL scheme")},
	}, nil)

	rec := do(h, http.MethodPost, "/v1/normalize/batch", `{"urls":["http://Example.com","noscheme"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[
		{"input":"http://Example.com","normalized":"http://example.com/"},
		{"input":"noscheme","error":{"code":"INVALID_URL","message":"missing URL scheme"}}
	]}`, rec.Body.String())
}

func TestNormalizeBatch_EmptyList(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().NormalizeBatch(gomock.Any(), gomock.Len(0)).Return([]normalizer.BatchItem{}, nil)

	rec := do(h, http.MethodPost, "/v1/normalize/batch", `{"urls":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestNormalizeBatch_TooLarge(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().NormalizeBatch(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "batch of 2 URLs exceeds the limit of 1"))

	rec := do(h, http.MethodPost, "/v1/normalize/batch", `{"urls":["http://a.com/","http://b.com/"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"code":"BAD_REQUEST","message":"batch of 2 URLs exceeds the limit of 1"}`, rec.Body.String())
}

func TestNormalizeBatch_MissingURLs(t *testing.T) {
	_, h := newTestHandler(t, v1handler.Options{})

	rec := do(h, http.MethodPost, "/v1/normalize/batch", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `missing \"urls\"`)
}

func TestNormalizeBatch_Timeout(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().NormalizeBatch(gomock.Any(), gomock.Any()).
		Return(nil, serrors.Wrap(serrors.ErrTimeout, context.DeadlineExceeded, "normalized 0 of 1 URLs"))

	rec := do(h, http.MethodPost, "/v1/normalize/batch", `{"urls":["http://a.com/"]}`)
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"TIMEOUT"`)
}

func TestEqual_OK(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().Equal(gomock.Any(), "http://a.com:80/", "HTTP://A.COM").Return(true, nil)

	rec := do(h, http.MethodPost, "/v1/equal", `{"a":"http://a.com:80/","b":"HTTP://A.COM"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"equal":true}`, rec.Body.String())
}

func TestEqual_MissingOperand(t *testing.T) {
	_, h := newTestHandler(t, v1handler.Options{})

	rec := do(h, http.MethodPost, "/v1/equal", `{"a":"http://a.com/"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
}

func TestEqual_InternalError(t *testing.T) {
	n, h := newTestHandler(t, v1handler.Options{})
	n.EXPECT().Equal(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("boom"))

	rec := do(h, http.MethodPost, "/v1/equal", `{"a":"http://a.com/","b":"http://b.com/"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"code":"INTERNAL","message":"internal error"}`, rec.Body.String())
}
