package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hirehub/internal/storage"
)

type fakeAPI struct {
	puts    []*s3.PutObjectInput
	bodies  []string
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestClient_Upload(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api, Config{Bucket: "hirehub", Region: "ap-south-1"})

	err := client.Upload(context.Background(), "profile_images/a.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)

	require.Len(t, api.puts, 1)
	put := api.puts[0]
	assert.Equal(t, "hirehub", aws.ToString(put.Bucket))
	assert.Equal(t, "profile_images/a.png", aws.ToString(put.Key))
	assert.Equal(t, "image/png", aws.ToString(put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(put.ContentLength))
	assert.Equal(t, "data", api.bodies[0])
}

func TestClient_UnknownSize(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api, Config{Bucket: "hirehub"})

	require.NoError(t, client.Upload(context.Background(), "aadhar_cards/a.jpg", strings.NewReader("x"), -1, "image/jpeg"))
	assert.Nil(t, api.puts[0].ContentLength)
}

func TestClient_Delete(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api, Config{Bucket: "hirehub"})

	require.NoError(t, client.Delete(context.Background(), "aadhar_cards/a.jpg"))
	require.Len(t, api.deletes, 1)
	assert.Equal(t, "aadhar_cards/a.jpg", aws.ToString(api.deletes[0].Key))

	assert.ErrorIs(t, client.Delete(context.Background(), "../x"), storage.ErrInvalidKey)
}

func TestClient_WrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	client := NewWithAPI(&fakeAPI{err: boom}, Config{Bucket: "hirehub"})

	err := client.Upload(context.Background(), "profile_images/a.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, boom)
}

func TestClient_URL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "aws virtual hosted",
			cfg:  Config{Bucket: "hirehub", Region: "ap-south-1"},
			want: "https://hirehub.s3.ap-south-1.amazonaws.com/profile_images/a.png",
		},
		{
			name: "custom endpoint",
			cfg:  Config{Bucket: "hirehub", Endpoint: "http://127.0.0.1:9000/"},
			want: "http://127.0.0.1:9000/hirehub/profile_images/a.png",
		},
		{
			name: "public url wins",
			cfg:  Config{Bucket: "hirehub", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/profile_images/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewWithAPI(&fakeAPI{}, tt.cfg)
			assert.Equal(t, tt.want, client.URL("profile_images/a.png"))
		})
	}
}

func TestNewClient_RequiresBucket(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrBucketRequired)
}

func TestNewClient_StaticCredentials(t *testing.T) {
	client, err := NewClient(context.Background(), Config{
		Bucket:    "hirehub",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/hirehub/x.png", client.URL("x.png"))
}
