package server

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fundestpuente/agromind-mcp/internal/catalog"
)

func TestHandleResourcesList(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := srv.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "resources/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("resources/list failed: %+v", resp)
	}

	result, ok := resp.Result.(mcp.ListResourcesResult)
	if !ok {
		t.Fatalf("result is %T, want mcp.ListResourcesResult", resp.Result)
	}

	want := []struct{ uri, mime string }{
		{CropsURI, "application/json"},
		{TroubleshootingURI, "text/markdown"},
		{ParametersURI, "text/markdown"},
	}
	if len(result.Resources) != len(want) {
		t.Fatalf("got %d resources, want %d", len(result.Resources), len(want))
	}
	for i, w := range want {
		r := result.Resources[i]
		if r.URI != w.uri || r.MIMEType != w.mime {
			t.Errorf("resource %d = %s (%s), want %s (%s)", i, r.URI, r.MIMEType, w.uri, w.mime)
		}
		if r.Name == "" || r.Description == "" {
			t.Errorf("resource %s lacks name or description", r.URI)
		}
	}
}

// readText reads a resource through the JSON-RPC handler and returns its text.
func readText(t *testing.T, srv *Server, uri string) string {
	t.Helper()
	params, _ := json.Marshal(map[string]string{"uri": uri})
	resp := srv.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "resources/read",
		Params:  params,
	})
	if resp == nil || resp.Error != nil {
		t.Fatalf("resources/read %s failed: %+v", uri, resp)
	}
	result, ok := resp.Result.(*mcp.ReadResourceResult)
	if !ok {
		t.Fatalf("result is %T, want *mcp.ReadResourceResult", resp.Result)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(result.Contents))
	}
	contents, ok := result.Contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents is %T, want mcp.TextResourceContents", result.Contents[0])
	}
	if contents.URI != uri {
		t.Errorf("contents URI = %q, want %q", contents.URI, uri)
	}
	return contents.Text
}

func TestResourceReadRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)
	cat := srv.catalog

	t.Run("crops", func(t *testing.T) {
		var got map[string]catalog.CropProfile
		if err := json.Unmarshal([]byte(readText(t, srv, CropsURI)), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != len(cat.CropNames()) {
			t.Fatalf("got %d crops, want %d", len(got), len(cat.CropNames()))
		}
		for _, name := range cat.CropNames() {
			want, _ := cat.Crop(name)
			if !reflect.DeepEqual(got[name], want) {
				t.Errorf("crop %s differs after round trip", name)
			}
		}
	})

	t.Run("troubleshooting", func(t *testing.T) {
		var got map[string]catalog.TroubleshootingEntry
		if err := json.Unmarshal([]byte(readText(t, srv, TroubleshootingURI)), &got); err != nil {
			t.Fatal(err)
		}
		diagnoses := cat.Diagnoses()
		if len(got) != len(diagnoses) {
			t.Fatalf("got %d entries, want %d", len(got), len(diagnoses))
		}
		for _, d := range diagnoses {
			if !reflect.DeepEqual(got[d.Code], d.Entry) {
				t.Errorf("entry %s differs after round trip", d.Code)
			}
		}
	})

	t.Run("parameters", func(t *testing.T) {
		var got map[string]catalog.ParameterInfo
		if err := json.Unmarshal([]byte(readText(t, srv, ParametersURI)), &got); err != nil {
			t.Fatal(err)
		}
		keys := cat.ParameterKeys()
		if len(got) != len(keys) {
			t.Fatalf("got %d parameters, want %d", len(got), len(keys))
		}
		for _, k := range keys {
			want, _ := cat.Parameter(k)
			if got[k] != want {
				t.Errorf("parameter %s differs after round trip", k)
			}
		}
	})
}

func TestResourceReadUnknownURI(t *testing.T) {
	srv := newTestServer(t, nil)

	if _, err := srv.readResource("agro://crops/unknown"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("readResource() error = %v, want ErrResourceNotFound", err)
	}

	resp := srv.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      5,
		Method:  "resources/read",
		Params:  json.RawMessage(`{"uri":"agro://crops/unknown"}`),
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error for unknown resource")
	}
	if resp.Error.Code != -32002 {
		t.Errorf("error code = %d, want -32002", resp.Error.Code)
	}
	if resp.Error.Message != "Resource not found" {
		t.Errorf("error message = %q", resp.Error.Message)
	}
}
