package archive

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

var keyRe = regexp.MustCompile(`^vault/2024/03/07/[0-9a-f-]{36}\.blob$`)

func TestObjectKey(t *testing.T) {
	d := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

	k1 := ObjectKey(d)
	k2 := ObjectKey(d)

	assert.Regexp(t, keyRe, k1)
	assert.NotEqual(t, k1, k2)
}

func TestS3Archiver_Archive(t *testing.T) {
	f := &fakeS3{}
	a := newS3Archiver(f, "vault-archive", logging.Nop{})
	a.now = func() time.Time { return time.Date(2024, 3, 7, 23, 0, 0, 0, time.UTC) }

	key, err := a.Archive(context.Background(), "old-blob")
	require.NoError(t, err)

	assert.Regexp(t, keyRe, key)
	require.NotNil(t, f.input)
	assert.Equal(t, "vault-archive", aws.ToString(f.input.Bucket))
	assert.Equal(t, key, aws.ToString(f.input.Key))
	assert.Equal(t, int64(8), aws.ToInt64(f.input.ContentLength))
	assert.Equal(t, "old-blob", f.body)
}

func TestS3Archiver_Error(t *testing.T) {
	f := &fakeS3{err: errors.New("no such bucket")}
	a := newS3Archiver(f, "b", logging.Nop{})

	key, err := a.Archive(context.Background(), "x")
	require.Error(t, err)
	assert.Empty(t, key)
	assert.Contains(t, err.Error(), "no such bucket")
}

func TestNewS3Archiver(t *testing.T) {
	a, err := NewS3Archiver(context.Background(), Config{
		Region:       "us-east-1",
		RootUser:     "minio",
		RootPassword: "minio123",
		Bucket:       "vault-archive",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}, logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, "vault-archive", a.bucket)
	assert.NotNil(t, a.client)
}

func TestNop(t *testing.T) {
	key, err := Nop{}.Archive(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, key)
}
