package mcp

import (
	"encoding/json"

	"github.com/owenchateau/locadoc/documents"
)

// RegisterDefaultResources adds the registry resources to the server.
// Resources use the locadoc:// scheme.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "locadoc://types",
		Name:        "Document types",
		Description: "The document types the engine can generate, with prefix and title.",
		MIMEType:    "application/json",
		Handler:     handleTypesResource,
	})

	s.AddResource(Resource{
		URI:         "locadoc://prefixes",
		Name:        "Reference prefixes",
		Description: "Mapping from reference prefix (QUI, AVE, MED, ...) to document type.",
		MIMEType:    "application/json",
		Handler:     handlePrefixesResource,
	})
}

func handleTypesResource(uri string) ([]ResourceContent, error) {
	infos := make([]map[string]interface{}, 0)
	for _, t := range documents.Types() {
		d, _ := documents.Get(t)
		infos = append(infos, map[string]interface{}{
			"type":   string(d.Type),
			"prefix": d.Prefix,
			"title":  d.Title,
		})
	}

	jsonBytes, _ := json.MarshalIndent(infos, "", "  ")
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}

func handlePrefixesResource(uri string) ([]ResourceContent, error) {
	prefixes := make(map[string]string)
	for _, t := range documents.Types() {
		d, _ := documents.Get(t)
		prefixes[d.Prefix] = string(d.Type)
	}

	jsonBytes, _ := json.MarshalIndent(prefixes, "", "  ")
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}
