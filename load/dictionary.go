package load

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/storage"
	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMinWordLength is the longest word length that is still dropped
// from dictionaries.
const DefaultMinWordLength = 2

const gcsScheme = "gs://"

// Dictionary reads whitespace separated words from r, keeping those longer
// than minLen runes.
func Dictionary(r io.Reader, minLen int) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError(KindIO, "while reading dictionary", err)
	}

	words := []string{}
	for _, w := range strings.Fields(strings.ToLower(string(data))) {
		if utf8.RuneCountInString(w) > minLen {
			words = append(words, w)
		}
	}
	return words, nil
}

// ObjectReader opens objects in a blob store.
type ObjectReader interface {
	NewObjectReader(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}

// GCS reads dictionary objects from Google Cloud Storage.
type GCS struct {
	Client *storage.Client
}

func (g *GCS) NewObjectReader(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	r, err := g.Client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("while opening reader for object: %w", err)
	}
	return r, nil
}

type dictionaryConfig struct {
	objects ObjectReader
	minLen  int
}

type DictionaryOption func(*dictionaryConfig)

// WithObjectReader sets the store used for gs:// dictionary paths.
func WithObjectReader(o ObjectReader) DictionaryOption {
	return func(c *dictionaryConfig) {
		c.objects = o
	}
}

// WithMinLength overrides DefaultMinWordLength.
func WithMinLength(n int) DictionaryOption {
	return func(c *dictionaryConfig) {
		c.minLen = n
	}
}

// IsGCSPath reports whether path names a Cloud Storage object.
func IsGCSPath(path string) bool {
	return strings.HasPrefix(path, gcsScheme)
}

func splitGCSPath(path string) (bucket, object string, ok bool) {
	rest := strings.TrimPrefix(path, gcsScheme)
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}

// DictionaryFromPath loads a dictionary from a local file, or from a
// gs://bucket/object path when an ObjectReader is configured.
func DictionaryFromPath(ctx context.Context, path string, opts ...DictionaryOption) ([]string, error) {
	tracer := otel.Tracer("row-major.net/boggle/load")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "load.DictionaryFromPath")
	defer span.End()

	span.SetAttributes(attribute.String("path", path))

	cfg := &dictionaryConfig{
		minLen: DefaultMinWordLength,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rc, err := openDictionary(ctx, path, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rc.Close()

	words, err := Dictionary(rc, cfg.minLen)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	glog.V(1).Infof("Loaded %d words from %q", len(words), path)
	span.SetAttributes(attribute.Int("words", len(words)))
	span.SetStatus(codes.Ok, "")
	return words, nil
}

func openDictionary(ctx context.Context, path string, cfg *dictionaryConfig) (io.ReadCloser, error) {
	if !IsGCSPath(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, NewError(KindIO, fmt.Sprintf("while opening dictionary %q", path), err)
		}
		return f, nil
	}

	bucket, object, ok := splitGCSPath(path)
	if !ok {
		return nil, NewError(KindIO, fmt.Sprintf("malformed dictionary path %q, want gs://bucket/object", path), nil)
	}
	if cfg.objects == nil {
		return nil, NewError(KindIO, fmt.Sprintf("no object store configured for dictionary %q", path), nil)
	}

	r, err := cfg.objects.NewObjectReader(ctx, bucket, object)
	if err != nil {
		return nil, NewError(KindIO, fmt.Sprintf("while opening dictionary object %q", path), err)
	}
	return r, nil
}
