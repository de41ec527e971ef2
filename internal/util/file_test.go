package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireRoot(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("changing file ownership requires root")
	}
}

func createTestFile(t *testing.T, perm os.FileMode, gid int) string {
	filePath := filepath.Join(t.TempDir(), "testfile")
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	require.NoError(t, os.Chown(filePath, 0, gid))
	require.NoError(t, os.Chmod(filePath, perm))
	return filePath
}

func TestFileHasPermissionsUserIsRoot(t *testing.T) {
	requireRoot(t)

	// GIVEN
	filePath := createTestFile(t, 0o700, 1000)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.True(t, result)
	assert.NoError(t, err)
}

func TestFileHasPermissionsGroupIsRootAndHasWrite(t *testing.T) {
	requireRoot(t)

	// GIVEN
	filePath := createTestFile(t, 0o770, 0)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.True(t, result)
	assert.NoError(t, err)
}

func TestFileHasPermissionsGroupOtherThanRootHasWritePermission(t *testing.T) {
	requireRoot(t)

	// GIVEN
	filePath := createTestFile(t, 0o770, 1000)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.EqualError(t, err, "group is not root but has write permission")
}

func TestFileHasPermissionsOtherHasWritePermission(t *testing.T) {
	requireRoot(t)

	// GIVEN
	filePath := createTestFile(t, 0o702, 0)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.EqualError(t, err, "others have write permission")
}

func TestFileHasPermissionsFileDoesNotExist(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "missing")

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestWritePidFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "run", "ipmi2go.pid")

	// WHEN
	err := WritePidFile(path)

	// THEN
	assert.NoError(t, err)
	pid, err := ReadPidFile(path)
	assert.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestRemovePidFile_Missing(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "ipmi2go.pid")

	// WHEN
	err := RemovePidFile(path)

	// THEN
	assert.NoError(t, err)
}

func TestReadPidFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "ipmi2go.pid")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	// WHEN
	_, err := ReadPidFile(path)

	// THEN
	assert.Error(t, err)
}
