package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	buckets map[string]bool
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, buckets: map[string]bool{}}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if aws.ToString(in.Bucket) == "" {
		return nil, errors.New("no bucket")
	}
	f.buckets[aws.ToString(in.Bucket)] = true
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestObjectStore(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	store := NewObjectStoreWithClient(client, "aurex-state", "/aurex/", 0)

	_, err := store.Get(ctx, "aurex-cart:p1")
	assert.True(t, errors.Is(err, ErrObjectNotFound))

	require.NoError(t, store.Put(ctx, "aurex-cart:p1", []byte(`{"items":[]}`)))
	assert.Contains(t, client.objects, "aurex/aurex-cart:p1.json")
	assert.True(t, client.buckets["aurex-state"])

	data, err := store.Get(ctx, "aurex-cart:p1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(data))

	require.NoError(t, store.Delete(ctx, "aurex-cart:p1"))
	require.NoError(t, store.Delete(ctx, "aurex-cart:p1"))
	_, err = store.Get(ctx, "aurex-cart:p1")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestObjectStore_WrapsFailures(t *testing.T) {
	store := NewObjectStoreWithClient(newFakeS3(), "", "", 0)
	err := store.Put(context.Background(), "k", []byte("{}"))
	assert.ErrorContains(t, err, "put object k")
}
