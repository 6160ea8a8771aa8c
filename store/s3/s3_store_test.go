package s3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/quant"
	"github.com/arloliu/tensorbuf/store"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.ListObjectsV2Output), args.Error(1)
	}

	return nil, args.Error(1)
}

func TestStore_PutGet(t *testing.T) {
	mockClient := new(MockS3Client)
	s := NewStore(mockClient, "test-bucket", "prefix")
	ctx := context.Background()

	buf, err := quant.Quantize([]float32{-1, 0, 0.25, 1}, format.PrecisionInt8)
	require.NoError(t, err)

	var stored []byte
	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/model/w.tb"
	})).Run(func(args mock.Arguments) {
		input := args.Get(1).(*s3.PutObjectInput)
		stored, _ = io.ReadAll(input.Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	n, err := store.SaveBuffer(ctx, s, "model/w.tb", buf, blob.WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.Len(t, stored, n)

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Key == "prefix/model/w.tb"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(stored)),
	}, nil).Once()

	got, err := store.LoadBuffer(ctx, s, "model/w.tb")
	require.NoError(t, err)
	assert.Equal(t, buf.Data, got.Data)
	assert.Equal(t, buf.Scheme, got.Scheme)

	mockClient.AssertExpectations(t)
}

func TestStore_GetNotFound(t *testing.T) {
	mockClient := new(MockS3Client)
	s := NewStore(mockClient, "test-bucket", "prefix")

	mockClient.On("GetObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	mockClient.On("GetObject", mock.Anything, mock.Anything).Return(nil, &types.NotFound{}).Once()
	_, err = store.LoadBuffer(context.Background(), s, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	mockClient := new(MockS3Client)
	s := NewStore(mockClient, "test-bucket", "prefix")

	mockClient.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/del"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()
	require.NoError(t, s.Delete(context.Background(), "del"))

	mockClient.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	require.NoError(t, s.Delete(context.Background(), "gone"))

	mockClient.AssertExpectations(t)
}

func TestStore_List(t *testing.T) {
	mockClient := new(MockS3Client)
	s := NewStore(mockClient, "test-bucket", "prefix/")

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return *input.Bucket == "test-bucket" && *input.Prefix == "prefix/"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("prefix/file1")},
			{Key: aws.String("prefix/dir/file2")},
		},
	}, nil).Once()

	keys, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/file2", "file1"}, keys)
}

func TestStore_List_Pagination(t *testing.T) {
	mockClient := new(MockS3Client)
	s := NewStore(mockClient, "test-bucket", "")

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents:              []types.Object{{Key: aws.String("b.tb")}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token1"),
	}, nil).Once()

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token1"
	})).Return(&s3.ListObjectsV2Output{
		Contents:    []types.Object{{Key: aws.String("a.tb")}},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	keys, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tb", "b.tb"}, keys)
	mockClient.AssertExpectations(t)
}

func TestStore_RejectsInvalidNames(t *testing.T) {
	s := NewStore(new(MockS3Client), "test-bucket", "")

	require.ErrorIs(t, s.Put(context.Background(), "a/../../b", nil), store.ErrInvalidName)
	_, err := s.Get(context.Background(), "")
	require.ErrorIs(t, err, store.ErrInvalidName)
}
