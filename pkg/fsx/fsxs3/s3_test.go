package fsxs3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	fs := NewS3FileSystem(client, "cvs", "resumes")

	require.NoError(t, fs.WriteFile(ctx, "2024/cv.pdf", strings.NewReader("data"), "application/pdf"))
	assert.Contains(t, client.objects, "resumes/2024/cv.pdf")
	assert.Equal(t, "application/pdf", client.types["resumes/2024/cv.pdf"])

	ok, err := fs.Exists(ctx, "2024/cv.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := fs.ReadFile(ctx, "2024/cv.pdf")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(b))

	require.NoError(t, fs.DeleteFile(ctx, "2024/cv.pdf"))

	ok, err = fs.Exists(ctx, "2024/cv.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.ReadFile(ctx, "2024/cv.pdf")
	assert.ErrorIs(t, err, fsx.ErrNotExist)
}

func TestS3KeyCannotClimbOutOfPrefix(t *testing.T) {
	fs := NewS3FileSystem(newFakeS3(), "cvs", "resumes")
	assert.Equal(t, "resumes/etc/passwd", fs.key("../../etc/passwd"))
}
