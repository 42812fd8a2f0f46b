package locadoc

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/owenchateau/locadoc/documents"
)

// Option is a functional option for configuring an Engine via New.
type Option func(*engineConfig)

type engineConfig struct {
	log          *zap.Logger
	logoPath     string
	annexes      []string
	clauseLoader ClauseLoader
}

// WithLogger sets the structured logger used by the engine and passed down
// to the renderers. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *engineConfig) {
		c.log = log
	}
}

// WithLogo sets the path of the logo image embedded in document headers.
// A logo that cannot be read is logged and skipped at render time.
func WithLogo(path string) Option {
	return func(c *engineConfig) {
		c.logoPath = path
	}
}

// WithAnnexes sets the PDF files appended after the lease contract body.
// Other document types ignore them.
func WithAnnexes(paths ...string) Option {
	return func(c *engineConfig) {
		c.annexes = append(c.annexes, paths...)
	}
}

// WithClauseLoader sets the loader that supplies the operator-configured
// custom clauses of lease contracts.
func WithClauseLoader(l ClauseLoader) Option {
	return func(c *engineConfig) {
		c.clauseLoader = l
	}
}

// ClauseLoader supplies the custom clauses injected into lease contracts.
// A loader failure downgrades to a contract without custom clauses; it
// never blocks the generation.
type ClauseLoader func() ([]documents.CustomClause, error)

// ClauseConfigKey is the configuration key under which custom contract
// clauses are stored.
const ClauseConfigKey = "contract_custom_clauses"

// FileClauseLoader loads custom clauses from a JSON file holding either a
// bare clause array or an object with the clauses under ClauseConfigKey.
func FileClauseLoader(path string) ClauseLoader {
	return func() ([]documents.CustomClause, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("locadoc: reading clauses %s: %w", path, err)
		}
		var clauses []documents.CustomClause
		if err := json.Unmarshal(raw, &clauses); err == nil {
			return clauses, nil
		}
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("locadoc: parsing clauses %s: %w", path, err)
		}
		body, ok := wrapped[ClauseConfigKey]
		if !ok {
			return nil, nil
		}
		if err := json.Unmarshal(body, &clauses); err != nil {
			return nil, fmt.Errorf("locadoc: parsing clauses %s: %w", path, err)
		}
		return clauses, nil
	}
}
