package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"damagesnap/internal/cache"
	"damagesnap/internal/models"
	"damagesnap/internal/observability"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultCacheTTL is how long a resolved location stays cached.
const DefaultCacheTTL = 24 * time.Hour

var (
	ErrLocationRequired = errors.New("Location string is required")
	ErrInvalidFormat    = errors.New("Invalid format from AI model")
	ErrUnparseable      = errors.New("Failed to parse AI response for coordinates")
)

// NotFoundError carries the model's explanation for an unknown location.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("location not found")

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Service resolves locations, caching successful answers in Redis.
type Service struct {
	completer Completer
	rdb       redis.Cmdable
	ttl       time.Duration
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache stores results in rdb for ttl. A nil rdb disables caching.
func WithCache(rdb redis.Cmdable, ttl time.Duration) Option {
	return func(s *Service) {
		s.rdb = rdb
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(c Completer, opts ...Option) *Service {
	s := &Service{completer: c, ttl: DefaultCacheTTL, logger: observability.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt is the instruction sent to the model for location.
func Prompt(location string) string {
	return fmt.Sprintf(`Given the location string "%s", provide its latitude and longitude in a JSON format: {"latitude": <lat>, "longitude": <lon>}. If the location cannot be found, return {"error": "Location not found"}. Only return the JSON object.`, location)
}

// CacheKey is the Redis key for location.
func CacheKey(location string) string {
	return "geocode:" + normalize(location)
}

func normalize(location string) string {
	return strings.ToLower(strings.Join(strings.Fields(location), " "))
}

// Geocode resolves location to coordinates.
func (s *Service) Geocode(ctx context.Context, location string) (coords models.Coordinates, err error) {
	ctx, span := observability.StartSpan(ctx, "geocode.resolve", attribute.String("geocode.location", location))
	defer func() {
		observability.GeocodeRequests.WithLabelValues(outcome(err)).Inc()
		observability.EndSpan(span, err)
	}()

	if strings.TrimSpace(location) == "" {
		return models.Coordinates{}, ErrLocationRequired
	}

	hit, err := cache.CacheAside(ctx, s.rdb, CacheKey(location), &coords, s.ttl, func() error {
		text, err := s.completer.Complete(ctx, Prompt(location))
		if err != nil {
			return err
		}
		coords, err = Parse(text)
		if err != nil {
			s.logger.WarnContext(ctx, "unusable geocoding answer",
				slog.String("location", location),
				slog.String("answer", text),
				slog.String("error", err.Error()))
		}
		return err
	})
	if err != nil {
		return models.Coordinates{}, err
	}
	if hit {
		observability.GeocodeCacheHits.Inc()
	}
	span.SetAttributes(attribute.Bool("geocode.cache_hit", hit))
	return coords, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLocationRequired), errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrUnparseable):
		return "invalid"
	default:
		return "error"
	}
}

// Parse interprets the model's answer. Markdown code fences are ignored.
func Parse(text string) (models.Coordinates, error) {
	var v any
	if err := json.Unmarshal([]byte(stripFences(text)), &v); err != nil || v == nil {
		return models.Coordinates{}, ErrUnparseable
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Coordinates{}, ErrInvalidFormat
	}
	if msg, ok := errorMessage(obj["error"]); ok {
		return models.Coordinates{}, &NotFoundError{Message: msg}
	}
	lat, okLat := obj["latitude"].(float64)
	lon, okLon := obj["longitude"].(float64)
	if !okLat || !okLon {
		return models.Coordinates{}, ErrInvalidFormat
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// errorMessage reports whether the "error" member is set to anything truthy.
func errorMessage(v any) (string, bool) {
	switch e := v.(type) {
	case nil:
		return "", false
	case string:
		return e, e != ""
	case bool:
		return "Location not found", e
	case float64:
		return fmt.Sprint(e), e != 0
	default:
		b, _ := json.Marshal(e)
		return string(b), true
	}
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
