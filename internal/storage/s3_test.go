package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplychain-service/internal/config"
)

func TestStorageKey(t *testing.T) {
	key := storageKey("documents", "invoice.pdf")
	require.True(t, strings.HasPrefix(key, "documents/"))
	require.True(t, strings.HasSuffix(key, "-invoice.pdf"))

	// identical names must not collide
	require.NotEqual(t, key, storageKey("documents", "invoice.pdf"))
}

func TestStorageKey_DefaultFolder(t *testing.T) {
	require.True(t, strings.HasPrefix(storageKey("", "a.txt"), "uploads/"))
	require.True(t, strings.HasPrefix(storageKey("/images/", "a.png"), "images/"))
}

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "invoice.pdf", sanitizeFileName("../../etc/invoice.pdf"))
	require.Equal(t, "report.csv", sanitizeFileName("C:\\docs\\report.csv"))
	require.Equal(t, "file", sanitizeFileName(""))
	require.Equal(t, "file", sanitizeFileName("dir/"))
}

func TestFileURL(t *testing.T) {
	aws := &Uploader{cfg: config.StorageConfig{Bucket: "supply-chain-files", Region: "us-east-1"}}
	require.Equal(t,
		"https://supply-chain-files.s3.us-east-1.amazonaws.com/documents/a.pdf",
		aws.fileURL("documents/a.pdf"))

	minio := &Uploader{cfg: config.StorageConfig{
		Bucket:       "supply-chain-files",
		BaseEndpoint: "http://localhost:9000/",
	}}
	require.Equal(t,
		"http://localhost:9000/supply-chain-files/documents/a.pdf",
		minio.fileURL("documents/a.pdf"))
}
