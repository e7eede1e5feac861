package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/apperror"
)

// ExtractResponseID finds the response identifier of a provider response
// using the lookup rule of its service type. It returns "" when the
// service type carries no identifier or none was found.
func ExtractResponseID(serviceType domain.ServiceType, header http.Header, body []byte) (string, error) {
	rule, ok := serviceType.ResponseIDRule()
	if !ok {
		return "", nil
	}
	if id := strings.TrimSpace(header.Get(rule.Header)); id != "" {
		return id, nil
	}
	if rule.HeaderMandatory {
		return "", apperror.Validation(fmt.Sprintf("missing %s header for %s response", rule.Header, serviceType))
	}
	if rule.BodyField == "" {
		return "", nil
	}

	var id string
	eachJSONObject(body, func(obj map[string]json.RawMessage) bool {
		raw, ok := obj[rule.BodyField]
		if !ok {
			return true
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			id = s
			return false
		}
		return true
	})
	return id, nil
}

// ExtractUsage returns the raw "usage" object of a response body, or "" if
// the body reports none. For streamed bodies the last chunk carrying usage
// wins.
func ExtractUsage(body []byte) string {
	var usage string
	eachJSONObject(body, func(obj map[string]json.RawMessage) bool {
		if raw, ok := obj["usage"]; ok && string(raw) != "null" {
			usage = string(raw)
		}
		return true
	})
	return usage
}

// eachJSONObject calls fn for the body decoded as a single JSON object, or
// for every "data:" line of a server-sent event stream. fn returns false to
// stop.
func eachJSONObject(body []byte, fn func(map[string]json.RawMessage) bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(body, &obj) == nil {
		fn(obj)
		return
	}

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}
		var chunk map[string]json.RawMessage
		if json.Unmarshal([]byte(data), &chunk) != nil {
			continue
		}
		if !fn(chunk) {
			return
		}
	}
}
