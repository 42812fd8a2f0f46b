package documents

import (
	"io"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Renderer is a prepared document payload ready to be rendered.
type Renderer interface {
	Render(w io.Writer, ctx RenderContext) error
}

// fileNamer is implemented by payloads that impose a filename on their
// artifact (the lease contract).
type fileNamer interface {
	Filename() string
}

// RenderContext carries the per-generation data the renderers need beyond
// their payload: the document reference, the generation timestamp and the
// engine-level configuration injected by the caller.
type RenderContext struct {
	Number      string
	GeneratedAt time.Time
	Clauses     []CustomClause // contract only
	Annexes     []string       // contract only: paths of PDF annexes
	LogoPath    string
	Log         *zap.Logger
}

func (ctx RenderContext) logger() *zap.Logger {
	if ctx.Log == nil {
		return zap.NewNop()
	}
	return ctx.Log
}

// Descriptor describes one document type: its reference prefix, its human
// title and the prepare-data transform that validates a raw payload into a
// Renderer.
type Descriptor struct {
	Type    Type
	Prefix  string // three-letter code of the document reference
	Title   string
	Prepare func(raw []byte) (Renderer, error)
}

var registry = map[Type]Descriptor{}

// register adds a descriptor; called from the init of each document file.
func register(d Descriptor) {
	registry[d.Type] = d
}

// Get returns the descriptor for a document type.
func Get(t Type) (Descriptor, bool) {
	d, ok := registry[t]
	return d, ok
}

// Types lists the registered document types in stable order.
func Types() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ArtifactName resolves the filename of a rendered artifact: payloads with
// a filename policy win, everything else falls back to the document
// reference.
func ArtifactName(r Renderer, number string) string {
	if fn, ok := r.(fileNamer); ok {
		return fn.Filename()
	}
	return number + ".pdf"
}
