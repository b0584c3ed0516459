package storage

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func startMinio(t *testing.T) (endpoint string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err = container.ConnectionString(ctx)
	require.NoError(t, err)
	return endpoint
}

func TestObjectStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	endpoint := startMinio(t)
	ctx := context.Background()

	cfg := Config{
		Bucket:    "synapse-test-" + uuid.New().String()[:8],
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}

	// the minio driver creates the bucket the S3 driver then shares
	cfg.Driver = DriverMinio
	minioStore, err := New(ctx, cfg)
	require.NoError(t, err)
	cfg.Driver = DriverS3
	s3Store, err := New(ctx, cfg)
	require.NoError(t, err)

	for name, store := range map[string]ObjectStore{"minio": minioStore, "s3": s3Store} {
		t.Run(name, func(t *testing.T) {
			key := "simulations/" + uuid.New().String() + "/samples.csv"
			data := []byte("time_ms,potential_mv\n0,1\n")

			require.NoError(t, store.UploadFile(ctx, key, "text/csv", data))

			got, err := store.DownloadFile(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, data, got)

			u, err := store.GenerateDownloadURL(ctx, key)
			require.NoError(t, err)
			resp, err := http.Get(u)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, data, body)

			require.NoError(t, store.DeleteFile(ctx, key))
			_, err = store.DownloadFile(ctx, key)
			assert.Error(t, err)
		})
	}
}
