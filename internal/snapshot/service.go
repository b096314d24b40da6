// Package snapshot checkpoints an archipelago into a key/value store and
// restores it transactionally.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"archipelago/internal/archipelago"
	dErrors "archipelago/pkg/domain-errors"
	"archipelago/pkg/platform/sentinel"
)

// Store persists opaque snapshot payloads by key. Put overwrites; Get
// returns sentinel.ErrNotFound for a missing key; deleting a missing key is
// not an error. List returns keys with the given prefix in lexical order.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// Source is the archipelago side of a checkpoint. Snapshot fails while
// evolutions are in flight, so Save waits for them first.
type Source interface {
	Wait()
	Snapshot() (archipelago.Snapshot, error)
	Restore(ctx context.Context, snap archipelago.Snapshot) error
}

// DefaultPrefix namespaces snapshot keys inside shared stores.
const DefaultPrefix = "archipelago/"

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Service saves and restores checkpoints.
type Service struct {
	store  Store
	source Source
	prefix string
	logger *slog.Logger
	tracer trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = prefix
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(store Store, source Source, opts ...Option) *Service {
	s := &Service{
		store:  store,
		source: source,
		prefix: DefaultPrefix,
		tracer: otel.Tracer("archipelago/internal/snapshot"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save waits for running evolutions, then checkpoints the archipelago under
// key, replacing any earlier one. An evolution requested between the wait and
// the capture makes Save fail with CodeConflict.
func (s *Service) Save(ctx context.Context, key string) (err error) {
	ctx, span := s.tracer.Start(ctx, "snapshot.Save", trace.WithAttributes(attribute.String("snapshot.key", key)))
	defer func() { endSpan(span, err) }()

	if err := checkKey(key); err != nil {
		return err
	}
	s.source.Wait()
	snap, err := s.source.Snapshot()
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode snapshot")
	}
	span.SetAttributes(
		attribute.Int("snapshot.islands", len(snap.Islands)),
		attribute.Int("snapshot.bytes", len(data)),
	)
	if err := s.store.Put(ctx, s.prefix+key, data); err != nil {
		return translate(err, key)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "snapshot saved",
			"key", key,
			"islands", len(snap.Islands),
			"bytes", len(data),
		)
	}
	return nil
}

// Restore loads the checkpoint stored under key. A missing or corrupt
// checkpoint leaves the archipelago untouched.
func (s *Service) Restore(ctx context.Context, key string) (err error) {
	ctx, span := s.tracer.Start(ctx, "snapshot.Restore", trace.WithAttributes(attribute.String("snapshot.key", key)))
	defer func() { endSpan(span, err) }()

	if err := checkKey(key); err != nil {
		return err
	}
	data, err := s.store.Get(ctx, s.prefix+key)
	if err != nil {
		return translate(err, key)
	}
	var snap archipelago.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode snapshot "+key)
	}
	if err := s.source.Restore(ctx, snap); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("snapshot.islands", len(snap.Islands)))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "snapshot restored",
			"key", key,
			"islands", len(snap.Islands),
		)
	}
	return nil
}

// Delete removes the checkpoint stored under key.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.prefix+key); err != nil {
		return translate(err, key)
	}
	return nil
}

// List returns the keys of every stored checkpoint.
func (s *Service) List(ctx context.Context) ([]string, error) {
	keys, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, translate(err, "")
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return dErrors.Newf(dErrors.CodeValidation, "invalid snapshot key %q", key)
	}
	return nil
}

func translate(err error, key string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "snapshot "+key)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "snapshot store")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "snapshot store")
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
