package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logoscenter/logos-bot/internal/config"
)

func stubConversion(t *testing.T) {
	t.Helper()
	orig := convertToMP3
	convertToMP3 = func(ctx context.Context, src, dst string) error {
		return os.WriteFile(dst, []byte("mp3-bytes"), 0o644)
	}
	t.Cleanup(func() { convertToMP3 = orig })
}

func pointAPIAt(t *testing.T, url string) {
	t.Helper()
	orig := apiURL
	apiURL = url
	t.Cleanup(func() { apiURL = orig })
}

func TestTranscribeOGA(t *testing.T) {
	stubConversion(t)

	var gotAuth, gotModel, gotLanguage, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()
		gotFilename = header.Filename

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" Ученика зовут Аня, работала хорошо. "}`))
	}))
	defer server.Close()
	pointAPIAt(t, server.URL)

	ogaPath := filepath.Join(t.TempDir(), "voice_abc.oga")
	require.NoError(t, os.WriteFile(ogaPath, []byte("oga-bytes"), 0o644))

	client := NewClient(config.Config{GROQ_API_KEY: "gsk-test"})
	text, err := client.TranscribeOGA(context.Background(), ogaPath)
	require.NoError(t, err)
	require.Equal(t, "Ученика зовут Аня, работала хорошо.", text)

	require.Equal(t, "Bearer gsk-test", gotAuth)
	require.Equal(t, "whisper-large-v3", gotModel)
	require.Equal(t, "ru", gotLanguage)
	require.Equal(t, "voice_abc.mp3", gotFilename)

	// Both the original and the converted file are cleaned up.
	_, err = os.Stat(ogaPath)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(filepath.Dir(ogaPath), "voice_abc.mp3"))
	require.True(t, os.IsNotExist(err))
}

func TestTranscribeOGAServerError(t *testing.T) {
	stubConversion(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()
	pointAPIAt(t, server.URL)

	ogaPath := filepath.Join(t.TempDir(), "voice_bad.oga")
	require.NoError(t, os.WriteFile(ogaPath, []byte("oga-bytes"), 0o644))

	client := NewClient(config.Config{GROQ_API_KEY: "gsk-test"})
	_, err := client.TranscribeOGA(context.Background(), ogaPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}

func TestAvailable(t *testing.T) {
	require.False(t, NewClient(config.Config{}).Available())
	require.False(t, NewClient(config.Config{GROQ_API_KEY: "your_groq_api_key_here"}).Available())
	require.True(t, NewClient(config.Config{GROQ_API_KEY: "gsk-real"}).Available())
}
