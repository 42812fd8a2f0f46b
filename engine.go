// Package locadoc generates French rental legal documents as PDF files:
// rent receipts, payment notices, formal demands, certificates, termination
// notices, rent revision letters, charge reconciliations, repayment plans
// and full lease contracts.
//
// The Engine is the single entry point: it resolves the document type in
// the registry, validates and prepares the payload, assigns a document
// reference and renders the PDF. Financial figures printed in the documents
// come from the calc package; French formatting from the format package;
// pagination from the layout package.
package locadoc

import (
	"bytes"
	"time"

	"go.uber.org/zap"

	"github.com/owenchateau/locadoc/documents"
	"github.com/owenchateau/locadoc/format"
)

// Engine generates documents. It is safe for concurrent use: a generation
// never mutates engine state.
type Engine struct {
	log          *zap.Logger
	logoPath     string
	annexes      []string
	clauseLoader ClauseLoader
	now          func() time.Time
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		log:          cfg.log,
		logoPath:     cfg.logoPath,
		annexes:      cfg.annexes,
		clauseLoader: cfg.clauseLoader,
		now:          time.Now,
	}
}

// Artifact is one generated document.
type Artifact struct {
	Type     documents.Type
	Number   string // document reference, e.g. "QUI-20260901-AB12"
	Filename string
	Data     []byte
}

// Generate produces the document of the given type from a raw JSON payload.
// Payload validation failures and calculation errors are returned before
// any rendering starts; configuration problems (missing logo, unreadable
// clause file, broken annex) are logged and the generation continues
// without the affected extra.
func (e *Engine) Generate(typ documents.Type, payload []byte) (*Artifact, error) {
	desc, ok := documents.Get(typ)
	if !ok {
		return nil, newDocError("generate", ErrUnknownType)
	}

	renderer, err := desc.Prepare(payload)
	if err != nil {
		return nil, newDocError("prepare", err)
	}

	now := e.now()
	number := format.DocumentNumber(desc.Prefix, now)
	ctx := documents.RenderContext{
		Number:      number,
		GeneratedAt: now,
		LogoPath:    e.logoPath,
		Log:         e.log,
	}
	if typ == documents.TypeLeaseContract {
		ctx.Clauses = e.loadClauses()
		ctx.Annexes = e.annexes
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, ctx); err != nil {
		return nil, newDocError("render", err)
	}

	art := &Artifact{
		Type:     typ,
		Number:   number,
		Filename: documents.ArtifactName(renderer, number),
		Data:     buf.Bytes(),
	}
	e.log.Info("document generated",
		zap.String("type", string(typ)),
		zap.String("number", number),
		zap.String("filename", art.Filename),
		zap.Int("bytes", len(art.Data)))
	return art, nil
}

// Types lists the document types the engine can generate.
func (e *Engine) Types() []documents.Type {
	return documents.Types()
}

// loadClauses runs the configured clause loader. Loader failures downgrade
// to a contract without custom clauses.
func (e *Engine) loadClauses() []documents.CustomClause {
	if e.clauseLoader == nil {
		return nil
	}
	clauses, err := e.clauseLoader()
	if err != nil {
		e.log.Warn("custom clauses unavailable, contract generated without them", zap.Error(err))
		return nil
	}
	return clauses
}
