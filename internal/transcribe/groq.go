// Package transcribe turns Telegram voice notes into text with Groq's
// Whisper endpoint. Telegram delivers voice as .oga, which Whisper does
// not accept, so files are converted to .mp3 with ffmpeg first.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/logoscenter/logos-bot/internal/config"
)

const whisperModel = "whisper-large-v3"

// Overridable for tests.
var (
	apiURL       = "https://api.groq.com/openai/v1/audio/transcriptions"
	convertToMP3 = ffmpegConvert
)

func ffmpegConvert(ctx context.Context, src, dst string) error {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-i", src, "-y", dst).CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w: %s", err, out)
	}
	return nil
}

// FFmpegAvailable reports whether ffmpeg is on PATH.
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Client transcribes audio files with the Groq API.
type Client struct {
	rc  *resty.Client
	key string
}

func NewClient(cfg config.Config) *Client {
	rc := resty.New().SetTimeout(2 * time.Minute)
	return &Client{rc: rc, key: cfg.GROQ_API_KEY}
}

// Available reports whether the client holds a usable API key.
func (c *Client) Available() bool {
	return c.key != "" && c.key != "your_groq_api_key_here"
}

// TranscribeOGA converts a .oga voice note to .mp3, ships it to Whisper
// and returns the recognized text. Both files are removed afterwards.
func (c *Client) TranscribeOGA(ctx context.Context, ogaPath string) (string, error) {
	mp3Path := strings.TrimSuffix(ogaPath, ".oga") + ".mp3"
	defer os.Remove(ogaPath)
	defer os.Remove(mp3Path)

	if err := convertToMP3(ctx, ogaPath, mp3Path); err != nil {
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(c.key).
		SetFile("file", mp3Path).
		SetFormData(map[string]string{
			"model":    whisperModel,
			"language": "ru",
		}).
		SetResult(&result).
		Post(apiURL)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("groq returned %s: %s", resp.Status(), resp.String())
	}

	return strings.TrimSpace(result.Text), nil
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

func shared() *Client {
	defaultOnce.Do(func() {
		defaultClient = NewClient(config.FromEnv())
	})
	return defaultClient
}

// Enabled reports whether voice transcription can work in this
// environment, meaning both a Groq key and ffmpeg are present.
func Enabled() bool {
	return shared().Available() && FFmpegAvailable()
}

// TranscribeOGA runs a transcription on the shared client.
func TranscribeOGA(ctx context.Context, ogaPath string) (string, error) {
	return shared().TranscribeOGA(ctx, ogaPath)
}
