package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadAndExists(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	exists, err := stub.ObjectExists(ctx, "customers/1/id-front.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	err = stub.Upload(ctx, "customers/1/id-front.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	exists, err = stub.ObjectExists(ctx, "customers/1/id-front.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	err = stub.DeleteObject(ctx, "customers/1/id-front.jpg")
	require.NoError(t, err)

	exists, err = stub.ObjectExists(ctx, "customers/1/id-front.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStubObjectStorage_PresignedURLs(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	uploadURL, expiresAt, err := stub.GenerateUploadURL(ctx, "receipts/r1.pdf", "application/pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, uploadURL, "receipts/r1.pdf")
	assert.True(t, expiresAt.After(time.Now()))

	downloadURL, _, err := stub.GenerateDownloadURL(ctx, "receipts/r1.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "/download/receipts/r1.pdf")
}

func TestStubObjectStorage_RejectsEmptyKey(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	_, _, err := stub.GenerateUploadURL(ctx, "", "image/jpeg", time.Minute)
	assert.Error(t, err)

	err = stub.Upload(ctx, "", nil, "")
	assert.Error(t, err)

	_, err = stub.ObjectExists(ctx, "")
	assert.Error(t, err)
}
