package s3snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// memoryBucket ObjectAPI в памяти
type memoryBucket struct {
	objects map[string][]byte
	putErr  error
	getErr  error

	contentType string
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{objects: make(map[string][]byte)}
}

func (b *memoryBucket) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if b.putErr != nil {
		return nil, b.putErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	b.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)] = data
	b.contentType = aws.StringValue(input.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (b *memoryBucket) GetObjectWithContext(_ aws.Context, input *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	data, ok := b.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func testEvents(t *testing.T) []*domain.Event {
	t.Helper()
	event, err := domain.NewEvent("concierto", "Sala A", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		map[string]int{"micrófonos": 2, "guitarras": 1})
	require.NoError(t, err)
	return []*domain.Event{event}
}

func TestPersister_RoundTrip(t *testing.T) {
	for _, key := range []string{"planner/eventos.json", "planner/eventos.cbor"} {
		t.Run(key, func(t *testing.T) {
			bucket := newMemoryBucket()
			p, err := New(bucket, "events", key)
			require.NoError(t, err)

			events := testEvents(t)
			require.NoError(t, p.Save(context.Background(), events))
			assert.Contains(t, bucket.objects, "events/"+key)

			loaded, err := p.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, events, loaded)
		})
	}
}

func TestPersister_ContentType(t *testing.T) {
	bucket := newMemoryBucket()
	p, err := New(bucket, "events", "eventos.cbor")
	require.NoError(t, err)

	require.NoError(t, p.Save(context.Background(), testEvents(t)))
	assert.Equal(t, "application/cbor", bucket.contentType)
}

func TestPersister_LoadMissingObject(t *testing.T) {
	p, err := New(newMemoryBucket(), "events", "eventos.json")
	require.NoError(t, err)

	events, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPersister_Errors(t *testing.T) {
	bucket := newMemoryBucket()
	bucket.putErr = errors.New("connection reset")
	bucket.getErr = awserr.New("AccessDenied", "Access Denied", nil)

	p, err := New(bucket, "events", "eventos.json")
	require.NoError(t, err)

	assert.ErrorIs(t, p.Save(context.Background(), testEvents(t)), ErrPutFailed)

	_, err = p.Load(context.Background())
	assert.ErrorIs(t, err, ErrGetFailed)
}
