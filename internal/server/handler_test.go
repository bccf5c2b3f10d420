package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/storage"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/verify"
)

type fakeService struct {
	result verify.Result
	err    error
	calls  int
	kind   constants.ContentKind
}

func (f *fakeService) Verify(_ context.Context, _ []byte, kind constants.ContentKind) (verify.Result, error) {
	f.calls++
	f.kind = kind
	return f.result, f.err
}

type HandlerSuite struct {
	suite.Suite
	service *fakeService
	router  http.Handler
}

func (s *HandlerSuite) SetupTest() {
	s.service = &fakeService{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := storage.NewStore(s.T().TempDir(), logger)
	metrics := NewMetrics(prometheus.NewRegistry())

	h := New(s.service, store, metrics, logger, 1<<20)
	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

// uploadRequest builds a multipart POST with one file part of the given
// declared content type.
func (s *HandlerSuite) uploadRequest(contentType string, payload []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="doc"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	s.Require().NoError(err)
	_, err = part.Write(payload)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/verify", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *HandlerSuite) TestVerifyOK() {
	masked := "XXXX XXXX 9012"
	dob := "15-06-2000"
	name := "Jane Doe"
	s.service.result = verify.Result{
		IDNumber:    &masked,
		DOB:         &dob,
		Name:        &name,
		Is18OrOlder: true,
		Valid:       true,
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, s.uploadRequest("image/png", []byte("png-bytes")))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.service.calls)
	s.Equal(constants.KindPNG, s.service.kind)

	var got verify.Result
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotNil(got.IDNumber)
	s.Equal("XXXX XXXX 9012", *got.IDNumber)
	s.True(got.Valid)
	s.Nil(got.Error)
}

func (s *HandlerSuite) TestVerifyInvalidStillOK() {
	// extraction failures ride inside the record; the call itself succeeds
	msg := "could not extract valid identity details"
	s.service.result = verify.Result{Error: &msg}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, s.uploadRequest("application/pdf", []byte("%PDF-1.4")))

	s.Equal(http.StatusOK, rec.Code)
	var got verify.Result
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.False(got.Valid)
	s.Require().NotNil(got.Error)
	s.Equal(msg, *got.Error)
}

func (s *HandlerSuite) TestUnsupportedMediaTypeRejectedBeforePipeline() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, s.uploadRequest("text/plain", []byte("hello")))

	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
	s.Zero(s.service.calls)
}

func (s *HandlerSuite) TestNilMetricsDefaulted() {
	// the constructor defaults metrics like it does the logger; a handler
	// built without them must still serve requests
	h := New(s.service, nil, nil, nil, 0)
	r := chi.NewRouter()
	h.Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, s.uploadRequest("image/png", []byte("png-bytes")))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestMissingFileField() {
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString("no multipart"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Zero(s.service.calls)
}
