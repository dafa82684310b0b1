// Package loader reads JSON documents from files, URLs and stdin.
// Every source is size-capped and syntax-checked before it reaches the
// analyzer, so a bad input fails with the source named instead of a
// bare decode error.
package loader

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/internal/httpclient"
	"github.com/teranos/jsongen/logger"
)

const (
	// MaxDocumentSize caps a single JSON document at 64 MiB.
	MaxDocumentSize = 64 << 20

	// DefaultTimeout bounds one URL fetch.
	DefaultTimeout = 30 * time.Second
)

// Document is one loaded JSON source.
type Document struct {
	// Source labels where the document came from, for status output.
	Source string
	// Data is the raw, validated JSON.
	Data []byte
}

// Loader resolves source arguments into documents.
type Loader struct {
	client  *httpclient.SaferClient
	log     *zap.SugaredLogger
	maxSize int64
}

// New creates a loader for local use: URL fetches may target
// localhost and private ranges, the way a developer points at a dev
// server. A nil log falls back to the package logger.
func New(log *zap.SugaredLogger) *Loader {
	client := httpclient.NewWithOptions(DefaultTimeout, httpclient.Options{AllowPrivate: true})
	return NewWithClient(client, log)
}

// NewStrict creates a loader whose URL fetches block private targets.
// The MCP server uses it because sources arrive from a remote client.
func NewStrict(log *zap.SugaredLogger) *Loader {
	return NewWithClient(httpclient.New(DefaultTimeout), log)
}

// NewWithClient creates a loader around a custom HTTP client.
func NewWithClient(client *httpclient.SaferClient, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = logger.Logger
	}
	return &Loader{
		client:  client,
		log:     log,
		maxSize: MaxDocumentSize,
	}
}

// Load reads one JSON document. The source is "-" for stdin, an
// http(s) URL, or a file path.
func (l *Loader) Load(source string) (*Document, error) {
	switch {
	case source == "-":
		return l.FromReader("stdin", os.Stdin)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.FromURL(source)
	default:
		return l.FromFile(source)
	}
}

// LoadAll reads every source in order, failing on the first error.
func (l *Loader) LoadAll(sources []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(sources))
	for _, source := range sources {
		doc, err := l.Load(source)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FromFile reads a JSON document from a local file.
func (l *Loader) FromFile(path string) (*Document, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		// Might still be valid JSON, so warn instead of failing.
		l.log.Warnw("file does not have a .json extension", "path", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	data, err := l.read(f, path)
	if err != nil {
		return nil, err
	}
	l.log.Debugw("loaded JSON document", "path", path, "bytes", len(data))
	return &Document{Source: "📄 " + path, Data: data}, nil
}

// FromURL fetches a JSON document over HTTP.
func (l *Loader) FromURL(rawURL string) (*Document, error) {
	resp, err := l.client.Get(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.Newf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "application/json") && !strings.HasSuffix(rawURL, ".json") {
		l.log.Warnw("response does not declare a JSON content type",
			"url", rawURL, "content_type", contentType)
	}

	data, err := l.read(resp.Body, rawURL)
	if err != nil {
		return nil, err
	}
	l.log.Debugw("loaded JSON document", "url", rawURL, "bytes", len(data))
	return &Document{Source: "🌐 " + rawURL, Data: data}, nil
}

// FromReader reads a JSON document from an arbitrary reader, labelled
// for error messages and status output.
func (l *Loader) FromReader(label string, r io.Reader) (*Document, error) {
	data, err := l.read(r, label)
	if err != nil {
		return nil, err
	}
	return &Document{Source: label, Data: data}, nil
}

func (l *Loader) read(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", source)
	}
	if int64(len(data)) > l.maxSize {
		return nil, errors.Newf("%s exceeds the %d MiB document limit", source, l.maxSize>>20)
	}
	if len(data) == 0 {
		return nil, errors.Newf("%s is empty", source)
	}

	// A payload holds one document or an NDJSON-style stream of
	// concatenated documents; every value must be complete.
	dec := json.NewDecoder(bytes.NewReader(data))
	values := 0
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			var syn *json.SyntaxError
			if errors.As(err, &syn) {
				return nil, errors.Newf("invalid JSON in %s at offset %d: %v", source, syn.Offset, err)
			}
			return nil, errors.Newf("invalid JSON in %s: %v", source, err)
		}
		values++
	}
	if values == 0 {
		return nil, errors.Newf("%s contains no JSON values", source)
	}
	return data, nil
}
