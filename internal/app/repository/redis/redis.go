package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"wavify/internal/app/model"
	"wavify/internal/app/repository"
)

const recordField = "record"

// StreamRecorder appends conversion records to a redis stream.
type StreamRecorder struct {
	client *redis.Client
	stream string
}

// Open connects to the redis server at url (redis://[:password@]host:port/db)
// and verifies the connection.
func Open(ctx context.Context, url, stream string) (*StreamRecorder, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, repository.Unavailable("parse redis url", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, repository.Unavailable("connect redis", err)
	}

	return NewStreamRecorder(client, stream), nil
}

// NewStreamRecorder wraps an existing client.
func NewStreamRecorder(client *redis.Client, stream string) *StreamRecorder {
	return &StreamRecorder{client: client, stream: stream}
}

// Record adds rec to the stream as a JSON document.
func (s *StreamRecorder) Record(ctx context.Context, rec *model.ConversionRecord) (string, error) {
	values, err := encode(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}

	if err := s.client.XAdd(ctx, &redis.XAddArgs{Stream: s.stream, Values: values}).Err(); err != nil {
		return "", repository.Unavailable("xadd", err)
	}
	return rec.ID, nil
}

// List reads the stream newest first.
func (s *StreamRecorder) List(ctx context.Context, limit, offset int) ([]model.ConversionRecord, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", int64(limit+offset)).Result()
	if err != nil {
		return nil, repository.Unavailable("xrevrange", err)
	}
	if offset >= len(msgs) {
		return []model.ConversionRecord{}, nil
	}

	records := make([]model.ConversionRecord, 0, len(msgs)-offset)
	for _, msg := range msgs[offset:] {
		rec, err := decode(msg)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Ping checks the connection.
func (s *StreamRecorder) Ping(ctx context.Context) error {
	return repository.Unavailable("ping redis", s.client.Ping(ctx).Err())
}

// Close closes the client.
func (s *StreamRecorder) Close() error {
	return s.client.Close()
}

func encode(rec *model.ConversionRecord) (map[string]interface{}, error) {
	repository.EnsureID(rec)
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":        rec.ID,
		recordField: string(data),
	}, nil
}

func decode(msg redis.XMessage) (model.ConversionRecord, error) {
	var rec model.ConversionRecord
	raw, ok := msg.Values[recordField].(string)
	if !ok {
		return rec, fmt.Errorf("stream entry %s has no %q field", msg.ID, recordField)
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return rec, fmt.Errorf("failed to unmarshal stream entry %s: %w", msg.ID, err)
	}
	return rec, nil
}

var _ repository.ConversionRecorder = (*StreamRecorder)(nil)
