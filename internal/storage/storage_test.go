package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, validateContentType("text/html"))
	assert.NoError(t, validateContentType("text/csv"))

	err := validateContentType("audio/wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid content type")
}

func TestConfig_URLExpiry(t *testing.T) {
	assert.Equal(t, 24*time.Hour, Config{}.urlExpiry())
	assert.Equal(t, time.Hour, Config{URLExpiry: time.Hour}.urlExpiry())
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{Driver: "gcs", Bucket: "b"})
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = New(ctx, Config{Driver: DriverS3})
	assert.ErrorContains(t, err, "S3_BUCKET is required")

	_, err = New(ctx, Config{Driver: DriverMinio, Bucket: "b"})
	assert.ErrorContains(t, err, "S3_ENDPOINT is required")
}

func TestS3Service_PresignsAgainstEndpoint(t *testing.T) {
	svc, err := NewS3Service(Config{
		Bucket:    "synapse-artifacts",
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		URLExpiry: 10 * time.Minute,
	})
	require.NoError(t, err)

	u, err := svc.GenerateDownloadURL(context.Background(), "simulations/abc/epsp.html")
	require.NoError(t, err)
	assert.Contains(t, u, "http://localhost:9000/synapse-artifacts/simulations/abc/epsp.html")
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=600")
}

func TestS3Service_RejectsUnsupportedContentType(t *testing.T) {
	svc, err := NewS3Service(Config{
		Bucket:    "synapse-artifacts",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	err = svc.UploadFile(context.Background(), "k", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "invalid content type")
}
