// Package embedder resolves raw image references into self-contained
// base64 data URIs, with a guaranteed placeholder fallback on any failure.
package embedder

import (
	"context"
	"encoding/base64"
	"io"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/verdanta/verdanta/internal/storage"
	"github.com/verdanta/verdanta/pkg/logger"
	"github.com/verdanta/verdanta/pkg/telemetry"
)

// placeholderSVG is the minimal placeholder image used whenever an image
// reference cannot be resolved. Downstream template injection has no
// null-check path, so the fallback must always be a valid, renderable URI.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="150" viewBox="0 0 200 150"><rect width="200" height="150" fill="#E5E7EB"/><path d="M70 95l25-30 20 24 15-18 25 24H70z" fill="#9CA3AF"/><circle cx="85" cy="55" r="10" fill="#9CA3AF"/></svg>`

// knownPrefixes are object-store path prefixes stripped before key lookup.
var knownPrefixes = []string{"uploads/", "images/", "public/"}

// PlaceholderDataURI is the fixed fallback data URI, byte-identical across
// calls.
var PlaceholderDataURI = "data:image/svg+xml;base64," +
	base64.StdEncoding.EncodeToString([]byte(placeholderSVG))

// Embedder resolves image references against the object store.
type Embedder struct {
	store   storage.ObjectStore
	metrics *telemetry.Metrics
}

// New creates an embedder. A nil store is allowed; every reference then
// resolves to the placeholder.
func New(store storage.ObjectStore) *Embedder {
	return &Embedder{
		store:   store,
		metrics: telemetry.GetMetrics(),
	}
}

// Embed resolves one raw reference to a data URI. It never fails: any error
// at any step is logged and the fixed placeholder URI is returned instead.
func (e *Embedder) Embed(ctx context.Context, ref string) string {
	if ref == "" || e.store == nil {
		return e.fallback(ref, nil)
	}

	key := ExtractKey(ref)
	if key == "" {
		return e.fallback(ref, nil)
	}

	obj, err := e.store.Fetch(ctx, key)
	if err != nil {
		return e.fallback(ref, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return e.fallback(ref, err)
	}
	if len(data) == 0 {
		return e.fallback(ref, nil)
	}

	return "data:" + obj.ContentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EmbedSection resolves an ordered list of references into a single markup
// fragment of embedded images for one report section. An empty list yields
// an empty fragment so optional image slots collapse cleanly.
func (e *Embedder) EmbedSection(ctx context.Context, refs []string, altText string) string {
	if len(refs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, ref := range refs {
		sb.WriteString(`<img class="report-image" src="`)
		sb.WriteString(e.Embed(ctx, ref))
		sb.WriteString(`" alt="`)
		sb.WriteString(altText)
		sb.WriteString(`"/>`)
	}
	return sb.String()
}

// fallback logs the failure and returns the fixed placeholder URI.
func (e *Embedder) fallback(ref string, err error) string {
	if err != nil {
		logger.Warn("Image embed failed, using placeholder",
			zap.String("ref", ref),
			zap.Error(err),
		)
	}
	e.metrics.ImagesFallback.Inc()
	return PlaceholderDataURI
}

// ExtractKey derives the object-store key from a raw reference, which may be
// a full remote URL or a bare path fragment: the query string is dropped,
// known path prefixes are stripped, and the terminal identifier remains.
func ExtractKey(ref string) string {
	raw := ref
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil {
			raw = u.Path
		}
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimPrefix(raw, "/")
	for _, prefix := range knownPrefixes {
		raw = strings.TrimPrefix(raw, prefix)
	}
	key := path.Base(raw)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
