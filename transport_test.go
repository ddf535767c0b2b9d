package temporalparseable

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/protobuf/proto"
)

func TestJSONRoundTripperConvertsProtobuf(t *testing.T) {
	traceID := bytes.Repeat([]byte{0xab}, 16)
	spanID := bytes.Repeat([]byte{0xcd}, 8)
	parentID := bytes.Repeat([]byte{0xef}, 8)

	reqMsg := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{{
			ScopeSpans: []*tracepb.ScopeSpans{{
				Spans: []*tracepb.Span{{
					TraceId:      traceID,
					SpanId:       spanID,
					ParentSpanId: parentID,
					Name:         "demo-span",
					Kind:         tracepb.Span_SPAN_KIND_INTERNAL,
				}},
			}},
		}},
	}
	body, err := proto.Marshal(reqMsg)
	require.NoError(t, err)

	var (
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
	}))
	defer srv.Close()

	client := newJSONClient(func() proto.Message {
		return new(coltracepb.ExportTraceServiceRequest)
	})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/traces", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-protobuf")

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "application/json", gotContentType)

	var doc struct {
		ResourceSpans []struct {
			ScopeSpans []struct {
				Spans []struct {
					TraceID      string `json:"traceId"`
					SpanID       string `json:"spanId"`
					ParentSpanID string `json:"parentSpanId"`
					Name         string `json:"name"`
					Kind         int    `json:"kind"`
				} `json:"spans"`
			} `json:"scopeSpans"`
		} `json:"resourceSpans"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &doc))
	require.Len(t, doc.ResourceSpans, 1)
	span := doc.ResourceSpans[0].ScopeSpans[0].Spans[0]

	assert.Equal(t, hex.EncodeToString(traceID), span.TraceID)
	assert.Equal(t, hex.EncodeToString(spanID), span.SpanID)
	assert.Equal(t, hex.EncodeToString(parentID), span.ParentSpanID)
	assert.Equal(t, "demo-span", span.Name)
	// Enums must be numbers, not protobuf enum names.
	assert.Equal(t, int(tracepb.Span_SPAN_KIND_INTERNAL), span.Kind)
}

func TestJSONRoundTripperPassthrough(t *testing.T) {
	var (
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
	}))
	defer srv.Close()

	client := newJSONClient(func() proto.Message {
		return new(coltracepb.ExportTraceServiceRequest)
	})
	req, err := http.NewRequest(http.MethodPost, srv.URL, bytes.NewReader([]byte(`{"already":"json"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"already":"json"}`, string(gotBody))
}

func TestHexifyIDsWalksNestedStructures(t *testing.T) {
	in := []byte(`{"resourceSpans":[{"scopeSpans":[{"spans":[{"traceId":"q6urq6urq6urq6urq6urqw==","attributes":[{"key":"traceId-like","value":{"stringValue":"untouched"}}]}]}]}]}`)

	out, err := hexifyIDs(in)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	span := doc["resourceSpans"].([]any)[0].(map[string]any)["scopeSpans"].([]any)[0].(map[string]any)["spans"].([]any)[0].(map[string]any)
	assert.Equal(t, "abababababababababababababababab", span["traceId"])

	attr := span["attributes"].([]any)[0].(map[string]any)
	assert.Equal(t, "untouched", attr["value"].(map[string]any)["stringValue"])
}
