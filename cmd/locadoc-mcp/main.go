// Command locadoc-mcp is an MCP (Model Context Protocol) server that exposes
// French rental document generation and financial calculations to AI
// assistants.
//
// # Installation
//
//	go install github.com/owenchateau/locadoc/cmd/locadoc-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "locadoc": {
//	      "command": "locadoc-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - list_document_types: List generatable document types
//   - generate_document: Generate a rental legal document as PDF
//   - calculate_indexation: Compute an IRL-based rent revision
//   - build_payment_plan: Spread a debt over monthly installments
//   - reconcile_charges: Compute the annual charge reconciliation
//   - check_solvency: Compute an income-to-rent ratio
//
// # Available Resources
//
//   - locadoc://types : Document types with prefix and title
//   - locadoc://prefixes : Reference prefix to type mapping
//
// # Environment
//
//   - LOCADOC_LOGO: path of a logo image embedded in document headers
//   - LOCADOC_CLAUSES: path of a JSON file with custom contract clauses
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	locadoc "github.com/owenchateau/locadoc"
	"github.com/owenchateau/locadoc/mcp"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "locadoc-mcp: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := []locadoc.Option{locadoc.WithLogger(log)}
	if logo := os.Getenv("LOCADOC_LOGO"); logo != "" {
		opts = append(opts, locadoc.WithLogo(logo))
	}
	if clauses := os.Getenv("LOCADOC_CLAUSES"); clauses != "" {
		opts = append(opts, locadoc.WithClauseLoader(locadoc.FileClauseLoader(clauses)))
	}
	engine := locadoc.New(opts...)

	server := mcp.NewServer()
	mcp.RegisterDefaultTools(server, engine)
	mcp.RegisterDefaultResources(server)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "locadoc-mcp: %v\n", err)
		os.Exit(1)
	}
}
