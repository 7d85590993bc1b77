package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

// jsonInput returns the request body when it is well-typed JSON: the
// Content-Type names a JSON media type (application/json or
// application/*+json) and the body is non-empty, valid UTF-8 JSON. Every
// other case, including a read error from an oversized body, yields nil.
func jsonInput(r *http.Request) json.RawMessage {
	if r.Body == nil || !isJSONContentType(r.Header.Get("Content-Type")) {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil
	}

	body = bytes.TrimSpace(body)
	// json.Valid lets invalid UTF-8 through inside strings; echoing it would
	// produce a response that is not JSON.
	if len(body) == 0 || !utf8.Valid(body) || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	if mt == "application/json" {
		return true
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}
