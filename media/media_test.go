package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/retailnext/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLocalArchiverStoresBytes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	a, err := NewLocalArchiver(dir, "/generated/")
	require.NoError(t, err)

	key, err := a.Archive(context.Background(), &models.GeneratedImage{Data: pngHeader})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "generated/"))
	require.True(t, strings.HasSuffix(key, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, path.Base(key)))
	require.NoError(t, err)
	require.Equal(t, pngHeader, stored)

	url, err := a.URL(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, "/generated/"+path.Base(key), url)
}

func TestLocalArchiverDownloadsProviderURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0jpegdata"))
	}))
	defer srv.Close()

	a, err := NewLocalArchiver(t.TempDir(), "/generated/")
	require.NoError(t, err)

	key, err := a.Archive(context.Background(), &models.GeneratedImage{URL: srv.URL + "/img", MIMEType: "image/jpeg"})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestArchiveErrors(t *testing.T) {
	a, err := NewLocalArchiver(t.TempDir(), "/generated/")
	require.NoError(t, err)

	_, err = a.Archive(context.Background(), nil)
	require.Error(t, err)

	_, err = a.Archive(context.Background(), &models.GeneratedImage{})
	require.ErrorContains(t, err, "neither data nor url")

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err = a.Archive(context.Background(), &models.GeneratedImage{URL: srv.URL})
	require.ErrorContains(t, err, "download generated image")
}

func testS3Client(endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:       "ap-south-1",
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}, nil
		}),
	})
}

func TestS3ArchiverUploads(t *testing.T) {
	var gotPath, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewS3ArchiverFromClient(testS3Client(srv.URL), "looks")
	key, err := a.Archive(context.Background(), &models.GeneratedImage{Data: pngHeader, MIMEType: "image/png"})
	require.NoError(t, err)
	require.Equal(t, "/looks/"+key, gotPath)
	require.Equal(t, "image/png", gotType)
	require.Contains(t, string(gotBody), "PNG")
}

func TestS3ArchiverPresignsURL(t *testing.T) {
	a := NewS3ArchiverFromClient(testS3Client("https://s3.example.com"), "looks")

	url, err := a.URL(context.Background(), "generated/abc.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://s3.example.com/looks/generated/abc.png?"))
	require.Contains(t, url, "X-Amz-Expires=3600")
	require.Contains(t, url, "X-Amz-Signature=")
}
