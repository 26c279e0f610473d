package file_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/costcache/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

// MockS3ListObjectsV2Paginator is a mock implementation of the S3ListObjectsV2Paginator interface
type MockS3ListObjectsV2Paginator struct {
	mock.Mock
}

func (m *MockS3ListObjectsV2Paginator) HasMorePages() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockS3ListObjectsV2Paginator) NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func newMockedS3(t *testing.T, client *MockS3Client, opts ...file.S3Option) *file.S3Storage {
	t.Helper()
	opts = append([]file.S3Option{file.WithS3Client(client)}, opts...)
	s, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
		Prefix: "files",
	}, opts...)
	require.NoError(t, err)
	return s
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})
}

func TestS3Storage_SizeKiB(t *testing.T) {
	t.Parallel()

	t.Run("existing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return aws.ToString(in.Bucket) == "test-bucket" && aws.ToString(in.Key) == "files/a.png"
		}), mock.Anything).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(10*1024 + 100)}, nil)

		s := newMockedS3(t, client)
		size, err := s.SizeKiB(context.Background(), "a.png")
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)
		assert.True(t, s.Exists(context.Background(), "a.png"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{Message: aws.String("Not Found")})

		s := newMockedS3(t, client)
		_, err := s.SizeKiB(context.Background(), "missing")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		assert.False(t, s.Exists(context.Background(), "missing"))
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newMockedS3(t, client)

		_, err := s.SizeKiB(context.Background(), "../x")
		assert.ErrorIs(t, err, file.ErrInvalidID)
		client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Create(t *testing.T) {
	t.Parallel()

	t.Run("new object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Key) == "files/new.bin" &&
				aws.ToInt64(in.ContentLength) == 2*1024 &&
				aws.ToString(in.IfNoneMatch) == "*"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		s := newMockedS3(t, client)
		f, err := s.Create(context.Background(), "new.bin", 2)
		require.NoError(t, err)
		assert.Equal(t, &file.File{ID: "new.bin", SizeKiB: 2, Size: 2048, Location: "files/new.bin"}, f)
		client.AssertExpectations(t)
	})

	t.Run("already exists", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(1024)}, nil)

		s := newMockedS3(t, client)
		_, err := s.Create(context.Background(), "dup", 5)
		assert.ErrorIs(t, err, file.ErrFileExists)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race on conditional put", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"})

		s := newMockedS3(t, client)
		_, err := s.Create(context.Background(), "race", 1)
		assert.ErrorIs(t, err, file.ErrFileExists)
	})

	t.Run("head fails", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"})

		s := newMockedS3(t, client)
		_, err := s.Create(context.Background(), "x", 1)
		assert.ErrorIs(t, err, file.ErrAccessDenied)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("body streams zeros", func(t *testing.T) {
		t.Parallel()
		var body io.Reader
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { body = args.Get(1).(*s3.PutObjectInput).Body }).
			Return(&s3.PutObjectOutput{}, nil)

		_, err := newMockedS3(t, client).Create(context.Background(), "small", 3)
		require.NoError(t, err)
		require.NotNil(t, body)

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 3*1024), data)

		seeker, ok := body.(io.Seeker)
		require.True(t, ok, "body must be seekable for payload signing")
		pos, err := seeker.Seek(0, io.SeekStart)
		require.NoError(t, err)
		assert.Zero(t, pos)
		n, err := io.Copy(io.Discard, body)
		require.NoError(t, err)
		assert.Equal(t, int64(3*1024), n, "rewound body replays in full")
	})

	t.Run("large object is not buffered", func(t *testing.T) {
		t.Parallel()
		const sizeKiB = 64 << 20 // 64 GiB
		var in *s3.PutObjectInput
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { in = args.Get(1).(*s3.PutObjectInput) }).
			Return(&s3.PutObjectOutput{}, nil)

		f, err := newMockedS3(t, client).Create(context.Background(), "big", sizeKiB)
		require.NoError(t, err)
		assert.Equal(t, int64(sizeKiB*1024), f.Size)

		require.NotNil(t, in)
		assert.Equal(t, int64(sizeKiB*1024), aws.ToInt64(in.ContentLength))

		seeker, ok := in.Body.(io.Seeker)
		require.True(t, ok)
		end, err := seeker.Seek(0, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(sizeKiB*1024), end)

		_, err = seeker.Seek(-1, io.SeekStart)
		assert.Error(t, err)
	})

	t.Run("size out of range", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		_, err := newMockedS3(t, client).Create(context.Background(), "huge", file.MaxSizeKiB+1)
		assert.ErrorIs(t, err, file.ErrInvalidSize)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative size", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newMockedS3(t, client)

		_, err := s.Create(context.Background(), "x", -3)
		assert.ErrorIs(t, err, file.ErrInvalidSize)
	})
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()

	t.Run("multiple pages", func(t *testing.T) {
		t.Parallel()
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true).Twice()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("files/b"), Size: aws.Int64(2048)},
				{Key: aws.String("files/"), Size: aws.Int64(0)},
			},
		}, nil).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("files/a"), Size: aws.Int64(1024)},
				{Key: aws.String("files/nested/c"), Size: aws.Int64(1024)},
			},
		}, nil).Once()
		paginator.On("HasMorePages").Return(false).Once()

		var gotPrefix string
		factory := func(_ file.S3Client, params *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator {
			gotPrefix = aws.ToString(params.Prefix)
			return paginator
		}

		s := newMockedS3(t, new(MockS3Client), file.WithPaginatorFactory(factory))
		entries, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "files/", gotPrefix)
		assert.Equal(t, []file.Entry{{ID: "a", SizeKiB: 1}, {ID: "b", SizeKiB: 2}}, entries)
		paginator.AssertExpectations(t)
	})

	t.Run("nil paginator", func(t *testing.T) {
		t.Parallel()
		s := newMockedS3(t, new(MockS3Client))
		_, err := s.List(context.Background())
		assert.ErrorIs(t, err, file.ErrPaginatorNil)
	})

	t.Run("page error", func(t *testing.T) {
		t.Parallel()
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true)
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(nil, &types.NoSuchBucket{})

		s := newMockedS3(t, new(MockS3Client), file.WithPaginatorFactory(
			func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator { return paginator },
		))
		_, err := s.List(context.Background())
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})
}

func TestS3Storage_Ping(t *testing.T) {
	t.Parallel()

	t.Run("reachable", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)
		assert.NoError(t, newMockedS3(t, client).Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused"))
		assert.ErrorIs(t, newMockedS3(t, client).Ping(context.Background()), file.ErrStorageUnavailable)
	})
}

func TestS3Storage_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", &types.NoSuchKey{}, file.ErrFileNotFound},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"request timeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, file.ErrRequestTimeout},
		{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := newMockedS3(t, client).SizeKiB(context.Background(), "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
