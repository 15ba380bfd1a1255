package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"catalog-service/metrics"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrCorrupt means the file exists but does not hold the expected JSON.
	ErrCorrupt = errors.New("store file is corrupt")
)

var tracer = otel.Tracer("catalog-service/store")

// jsonFile serialises every access to one file. The semaphore replaces a
// sync.Mutex so waiting callers can give up when their context ends.
type jsonFile struct {
	name   string
	path   string
	sem    chan struct{}
	logger *zap.Logger
}

func newJSONFile(name, path string, logger *zap.Logger) *jsonFile {
	return &jsonFile{
		name:   name,
		path:   path,
		sem:    make(chan struct{}, 1),
		logger: logger.With(zap.String("store", name), zap.String("path", path)),
	}
}

// withLock runs fn while holding the file lock inside a span, and records
// the outcome as a store metric.
func (f *jsonFile) withLock(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, f.name+"."+operation, trace.WithAttributes(
		attribute.String("store.name", f.name),
		attribute.String("store.path", f.path),
	))
	defer span.End()

	err := f.lock(ctx)
	if err == nil {
		err = fn(ctx)
		f.unlock()
	}

	result := resultOf(err)
	metrics.ObserveStoreOperation(f.name, operation, result)
	if result == metrics.ResultError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (f *jsonFile) lock(ctx context.Context) error {
	select {
	case f.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s store: %w", f.name, ctx.Err())
	}
}

func (f *jsonFile) unlock() {
	<-f.sem
}

// read decodes the file into v. It reports false when the file does not
// exist or holds only whitespace, leaving v untouched.
func (f *jsonFile) read(v any) (bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if dec.More() {
		return false, fmt.Errorf("%w: %s: trailing data after JSON value", ErrCorrupt, f.path)
	}
	return true, nil
}

// write replaces the file with v, pretty-printed with two-space indent. The
// data goes to a temp file in the same directory that is renamed over the
// target, so readers and crashes only ever see a complete file.
func (f *jsonFile) write(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.name, err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	f.logger.Debug("Store written", zap.Int("bytes", buf.Len()))
	return nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrOrderNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
