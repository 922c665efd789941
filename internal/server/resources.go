package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	CropsURI           = "agro://crops/database"
	TroubleshootingURI = "agro://guides/troubleshooting"
	ParametersURI      = "agro://reference/parameters"
)

// ErrResourceNotFound is returned for a URI outside the fixed resource set.
var ErrResourceNotFound = errors.New("resource not found")

// resourceEntry binds a resource descriptor to the store it renders.
type resourceEntry struct {
	resource mcp.Resource
	render   func() ([]byte, error)
}

func (s *Server) resourceTable() []resourceEntry {
	return []resourceEntry{
		{
			resource: mcp.NewResource(CropsURI, "Base de Datos de Cultivos",
				mcp.WithResourceDescription("Información completa de cultivos hidropónicos"),
				mcp.WithMIMEType("application/json"),
			),
			render: s.catalog.CropsJSON,
		},
		{
			resource: mcp.NewResource(TroubleshootingURI, "Guía de Troubleshooting",
				mcp.WithResourceDescription("Soluciones a problemas comunes"),
				mcp.WithMIMEType("text/markdown"),
			),
			render: s.catalog.TroubleshootingJSON,
		},
		{
			resource: mcp.NewResource(ParametersURI, "Referencia de Parámetros",
				mcp.WithResourceDescription("Explicación de parámetros técnicos"),
				mcp.WithMIMEType("text/markdown"),
			),
			render: s.catalog.ParametersJSON,
		},
	}
}

// handleResourcesList returns the resource descriptors.
func (s *Server) handleResourcesList(req *MCPRequest) *MCPResponse {
	table := s.resourceTable()
	resources := make([]mcp.Resource, 0, len(table))
	for _, e := range table {
		resources = append(resources, e.resource)
	}
	return s.successResponse(req.ID, mcp.ListResourcesResult{Resources: resources})
}

// handleResourcesRead returns a whole store as JSON text.
func (s *Server) handleResourcesRead(req *MCPRequest) *MCPResponse {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.readResource(params.URI)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return s.errorResponse(req.ID, codeResourceNotFound, "Resource not found",
				map[string]interface{}{"uri": params.URI})
		}
		s.logger.Error("failed to render resource", "uri", params.URI, "error", err)
		return s.errorResponse(req.ID, codeInternalError, "Failed to read resource", err.Error())
	}
	return s.successResponse(req.ID, result)
}

func (s *Server) readResource(uri string) (*mcp.ReadResourceResult, error) {
	for _, e := range s.resourceTable() {
		if e.resource.URI != uri {
			continue
		}
		data, err := e.render()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", uri, err)
		}
		return &mcp.ReadResourceResult{
			Contents: []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: e.resource.MIMEType,
					Text:     string(data),
				},
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
}
