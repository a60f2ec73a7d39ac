package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadAndExists(t *testing.T) {
	ctx := context.Background()
	stub := NewStubObjectStorage()

	require.NoError(t, stub.Upload(ctx, "kyc/7/pan_doc.pdf", []byte("pdf-bytes"), "application/pdf"))

	exists, err := stub.ObjectExists(ctx, "kyc/7/pan_doc.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = stub.ObjectExists(ctx, "kyc/7/missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStubObjectStorage_ListObjects(t *testing.T) {
	ctx := context.Background()
	stub := NewStubObjectStorage()

	require.NoError(t, stub.Upload(ctx, "kyc/7/pan_doc.pdf", []byte("a"), "application/pdf"))
	require.NoError(t, stub.Upload(ctx, "kyc/7/gstin_doc.pdf", []byte("bb"), "application/pdf"))
	require.NoError(t, stub.Upload(ctx, "kyc/8/pan_doc.pdf", []byte("c"), "application/pdf"))

	objects, err := stub.ListObjects(ctx, "kyc/7/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "kyc/7/gstin_doc.pdf", objects[0].Key)
	assert.Equal(t, int64(2), objects[0].Size)
	assert.Equal(t, "kyc/7/pan_doc.pdf", objects[1].Key)
}

func TestStubObjectStorage_Delete(t *testing.T) {
	ctx := context.Background()
	stub := NewStubObjectStorage()

	require.NoError(t, stub.Upload(ctx, "kyc/1/iec_doc.pdf", []byte("x"), "application/pdf"))
	require.NoError(t, stub.DeleteObject(ctx, "kyc/1/iec_doc.pdf"))

	exists, err := stub.ObjectExists(ctx, "kyc/1/iec_doc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, stub.DeleteObject(ctx, "kyc/1/iec_doc.pdf"))
}

func TestStubObjectStorage_DownloadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, expiresAt, err := stub.GenerateDownloadURL(context.Background(), "kyc/1/pan_doc.pdf", 15*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, url, "kyc/1/pan_doc.pdf")
	assert.True(t, expiresAt.After(time.Now()))
}
