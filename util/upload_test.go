package util

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("embryo.png"))
	assert.True(t, AllowedFile("EMBRYO.JPG"))
	assert.True(t, AllowedFile("day5.jpeg"))
	assert.False(t, AllowedFile("report.pdf"))
	assert.False(t, AllowedFile("png"))
	assert.False(t, AllowedFile(""))
}

func TestSecureFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"embryo day 5 (final).png", "embryo_day_5_final.png"},
		{"  .hidden.png", "hidden.png"},
		{"çiçek.jpg", "iek.jpg"},
		{"///", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SecureFilename(tc.in), tc.in)
	}
}

func fixedStore(t *testing.T) *UploadStore {
	t.Helper()
	store, err := NewUploadStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(1718000000, 0) }
	return store
}

func TestUploadStore_SaveBytes(t *testing.T) {
	store := fixedStore(t)

	name, err := store.SaveBytes("embryo.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "1718000000_embryo.png", name)

	data, err := os.ReadFile(store.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = store.SaveBytes("///", []byte("x"))
	assert.ErrorIs(t, err, ErrEmptyFilename)
}

func TestUploadStore_SaveBytesSameSecond(t *testing.T) {
	store := fixedStore(t)

	first, err := store.SaveBytes("embryo.png", []byte("first-patient-image"))
	require.NoError(t, err)
	second, err := store.SaveBytes("embryo.png", []byte("second-patient-image"))
	require.NoError(t, err)
	third, err := store.SaveBytes("embryo.png", []byte("third-patient-image"))
	require.NoError(t, err)

	assert.Equal(t, "1718000000_embryo.png", first)
	assert.Equal(t, "1718000000_1_embryo.png", second)
	assert.Equal(t, "1718000000_2_embryo.png", third)

	for name, want := range map[string]string{first: "first-patient-image", second: "second-patient-image", third: "third-patient-image"} {
		data, err := os.ReadFile(store.Path(name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestUploadStore_Remove(t *testing.T) {
	store := fixedStore(t)
	name, err := store.SaveBytes("embryo.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	assert.NoFileExists(t, store.Path(name))
	assert.NoError(t, store.Remove(name))
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestUploadStore_SaveMultipart(t *testing.T) {
	store := fixedStore(t)

	name, err := store.SaveMultipart(multipartHeader(t, "day 5.jpg", []byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "1718000000_day_5.jpg", name)
	assert.FileExists(t, store.Path(name))

	again, err := store.SaveMultipart(multipartHeader(t, "day 5.jpg", []byte("other-jpeg")))
	require.NoError(t, err)
	assert.Equal(t, "1718000000_1_day_5.jpg", again)
	data, err := os.ReadFile(store.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	_, err = store.SaveMultipart(multipartHeader(t, "notes.txt", []byte("text")))
	assert.ErrorIs(t, err, ErrFileNotAllowed)
}

func TestUploadStore_PathStaysInDir(t *testing.T) {
	store := fixedStore(t)
	assert.Equal(t, filepath.Join(store.Dir(), "passwd"), store.Path("../../etc/passwd"))
}
