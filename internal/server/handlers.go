package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/internal/hash"
)

// Response headers set on encode responses.
const (
	HeaderRecordCount    = "X-Record-Count"
	HeaderEncodeDuration = "X-Encode-Duration"
)

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// encodingFor maps a request to an encoding: the {encoding} route variable, or else the
// last path segment (/json, /text, /binary).
func encodingFor(r *http.Request) (format.EncodingType, error) {
	token, ok := mux.Vars(r)["encoding"]
	if !ok {
		token = r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]
	}

	return format.ParseEncoding(token)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	encodingType, err := encodingFor(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, errCodeNotFound)
		return
	}

	result, err := s.pipeline.Run(encodingType)
	if err != nil {
		s.logger.Error("pipeline run failed",
			zap.String("encoding", encodingType.String()),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, errCodeInternal)

		return
	}

	etag := hash.ETag(result.Payload)

	h := w.Header()
	h.Set("Content-Type", result.ContentType)
	h.Set("ETag", etag)
	h.Set("Cache-Control", "no-cache")
	h.Set(HeaderRecordCount, strconv.Itoa(s.pipeline.Len()))
	h.Set(HeaderEncodeDuration, result.EncodeSample().Duration.String())

	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Length", strconv.Itoa(len(result.Payload)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(result.Payload); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Debug("write response failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
	}
}

// etagMatches implements the weak comparison of an If-None-Match list.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}

	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Records: s.pipeline.Len(),
	})
}
