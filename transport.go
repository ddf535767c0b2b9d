package temporalparseable

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Parseable's OTLP endpoints ingest JSON, not protobuf, while the OTel OTLP
// HTTP exporters always POST application/x-protobuf. jsonRoundTripper sits
// between the two: it decodes the protobuf export request, re-encodes it as
// OTLP/JSON and forwards it with the matching content type. Requests that are
// not protobuf pass through untouched.
//
// The OTLP/JSON spec requires trace/span identifiers to be lowercase hex
// strings, whereas protojson emits bytes fields as base64; the encoded
// document is post-processed to fix those fields up.
type jsonRoundTripper struct {
	base       http.RoundTripper
	newRequest func() proto.Message
}

// newJSONClient returns an http.Client whose transport re-encodes OTLP
// protobuf bodies as OTLP/JSON. newRequest must return a fresh Export*
// ServiceRequest message for the signal being exported.
func newJSONClient(newRequest func() proto.Message) *http.Client {
	return &http.Client{
		Transport: &jsonRoundTripper{
			base:       http.DefaultTransport,
			newRequest: newRequest,
		},
	}
}

func (rt *jsonRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil || req.Header.Get("Content-Type") != "application/x-protobuf" {
		return rt.base.RoundTrip(req)
	}

	body, err := io.ReadAll(req.Body)
	if cerr := req.Body.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("temporal parseable: read export request body: %w", err)
	}

	msg := rt.newRequest()
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("temporal parseable: decode export request: %w", err)
	}
	encoded, err := protojson.MarshalOptions{UseEnumNumbers: true}.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("temporal parseable: encode export request as JSON: %w", err)
	}
	encoded, err = hexifyIDs(encoded)
	if err != nil {
		return nil, fmt.Errorf("temporal parseable: rewrite trace identifiers: %w", err)
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(encoded))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(encoded)), nil
	}
	out.ContentLength = int64(len(encoded))
	out.Header.Set("Content-Type", "application/json")
	return rt.base.RoundTrip(out)
}

// Keys whose values are base64-encoded bytes that must become hex strings per
// the OTLP/JSON specification.
var idKeys = map[string]struct{}{
	"traceId":      {},
	"spanId":       {},
	"parentSpanId": {},
}

func hexifyIDs(encoded []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(rewriteIDs(doc))
}

func rewriteIDs(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, val := range node {
			if s, ok := val.(string); ok {
				if _, isID := idKeys[k]; isID {
					node[k] = base64ToHex(s)
					continue
				}
			}
			node[k] = rewriteIDs(val)
		}
		return node
	case []any:
		for i, item := range node {
			node[i] = rewriteIDs(item)
		}
		return node
	default:
		return v
	}
}

func base64ToHex(s string) string {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return hex.EncodeToString(raw)
}
