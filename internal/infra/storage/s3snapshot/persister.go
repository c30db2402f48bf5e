package s3snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/snapshot"
)

// Persister хранит снимок событий одним объектом в бакете
type Persister struct {
	client ObjectAPI
	bucket string
	key    string
	codec  snapshot.Codec
}

// New создает persister поверх готового клиента
func New(client ObjectAPI, bucket, key string) (*Persister, error) {
	codec, err := snapshot.CodecForPath(key)
	if err != nil {
		return nil, err
	}
	return &Persister{
		client: client,
		bucket: bucket,
		key:    key,
		codec:  codec,
	}, nil
}

// NewClient создает клиента S3; endpoint задаётся для S3-совместимых хранилищ (minio)
func NewClient(region, endpoint string) (*s3.S3, error) {
	cfg := &aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}
	return s3.New(sess), nil
}

// Save загружает снимок одним PutObject
func (p *Persister) Save(ctx context.Context, events []*domain.Event) error {
	data, err := p.codec.Encode(snapshot.FromDomain(events))
	if err != nil {
		return err
	}

	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(p.contentType()),
	})
	if err != nil {
		return fmt.Errorf("%w: Save - s3://%s/%s: %v", ErrPutFailed, p.bucket, p.key, err)
	}
	return nil
}

// Load читает снимок; отсутствующий объект означает пустой список
func (p *Persister) Load(ctx context.Context) ([]*domain.Event, error) {
	out, err := p.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		if isNotFound(err) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("%w: Load - s3://%s/%s: %v", ErrGetFailed, p.bucket, p.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - read body: %v", ErrGetFailed, err)
	}

	records, err := p.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	return snapshot.ToDomain(records)
}

func (p *Persister) contentType() string {
	switch name := p.codec.Name(); {
	case strings.HasSuffix(name, "+zstd"):
		return "application/zstd"
	case name == "cbor":
		return "application/cbor"
	default:
		return "application/json"
	}
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	default:
		return false
	}
}
