package archive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Store(t *testing.T) {
	client := &fakeS3{}
	sink := &S3Sink{client: client, bucket: "purged"}

	loc, err := sink.Store(context.Background(), "orphans", "r-1-0001", []byte(`{"id":"c-1"}`+"\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3://purged/authmaint/orphans/r-1-0001.jsonl", loc)

	require.NotNil(t, client.input)
	assert.Equal(t, "purged", *client.input.Bucket)
	assert.Equal(t, "authmaint/orphans/r-1-0001.jsonl", *client.input.Key)
	assert.Equal(t, "application/x-ndjson", *client.input.ContentType)

	body, err := io.ReadAll(client.input.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"c-1"`)
}

func TestS3Sink_StoreError(t *testing.T) {
	sink := &S3Sink{client: &fakeS3{err: errors.New("denied")}, bucket: "purged"}

	_, err := sink.Store(context.Background(), "dupkeys", "r-1-0001", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive upload")
}

func TestNopSink(t *testing.T) {
	loc, err := NopSink{}.Store(context.Background(), "orphans", "r-1-0001", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, loc)
}
