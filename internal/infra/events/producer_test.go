package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish_EncodesJSONWithKey(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.Publish(context.Background(), "order-1", map[string]string{"type": "order.created"})

	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	require.Equal(t, "order-1", string(w.messages[0].Key))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &body))
	require.Equal(t, "order.created", body["type"])
	require.False(t, w.messages[0].Time.IsZero())
}

func TestPublish_Errors(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Producer{writer: w}

	require.Error(t, p.Publish(context.Background(), "k", struct{}{}))
	require.Error(t, p.Publish(context.Background(), "k", make(chan int)))
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, (&Producer{writer: w}).Close())
	require.True(t, w.closed)
}
