// Package device exposes the platform capabilities the document client can
// use: camera and gallery access on native mobile builds, file picking,
// sharing and downloading into the documents directory.
package device

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/spf13/afero"
)

// ErrUnsupported is returned for capabilities the current platform lacks
var ErrUnsupported = errors.New("capability not supported on this platform")

// Platform names the runtime the client is running on
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
	PlatformDesktop Platform = "desktop"
)

// PickedFile is a file selected by the user, held in memory
type PickedFile struct {
	Name string
	Mime string
	Data []byte
}

type Capabilities struct {
	fs    afero.Fs
	http  *http.Client
	log   log.LoggerService
	goos  string
	docs  string
	share []string
}

type Option func(*Capabilities)

// WithFs replaces the filesystem used for picking and downloading files
func WithFs(fs afero.Fs) Option {
	return func(c *Capabilities) {
		c.fs = fs
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Capabilities) {
		c.http = client
	}
}

// WithGOOS overrides the detected operating system
func WithGOOS(goos string) Option {
	return func(c *Capabilities) {
		c.goos = goos
	}
}

func NewCapabilities(cfg config.DeviceClientConfig, logger log.LoggerService, opts ...Option) *Capabilities {
	c := &Capabilities{
		fs:    afero.NewOsFs(),
		http:  http.DefaultClient,
		log:   logger.Named("device"),
		goos:  runtime.GOOS,
		docs:  cfg.DocumentsDir,
		share: strings.Fields(cfg.ShareCommand),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.docs == "" {
		c.docs = defaultDocumentsDir()
	}
	return c
}

func defaultDocumentsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}

// Platform reports the runtime: android and ios builds are native, every
// other target counts as desktop.
func (c *Capabilities) Platform() Platform {
	switch c.goos {
	case "android":
		return PlatformAndroid
	case "ios":
		return PlatformIOS
	case "js", "wasip1":
		return PlatformWeb
	default:
		return PlatformDesktop
	}
}

func (c *Capabilities) IsNative() bool {
	p := c.Platform()
	return p == PlatformAndroid || p == PlatformIOS
}

// DocumentsDir is where downloads are written
func (c *Capabilities) DocumentsDir() string {
	return c.docs
}

// TakePhoto captures a document with the device camera
func (c *Capabilities) TakePhoto(ctx context.Context) (*PickedFile, error) {
	if !c.IsNative() {
		return nil, ErrUnsupported
	}
	// Camera access needs a platform bridge that terminal builds do not ship.
	return nil, fmt.Errorf("camera on %s: %w", c.Platform(), ErrUnsupported)
}

// PickImage selects an image from the device gallery
func (c *Capabilities) PickImage(ctx context.Context) (*PickedFile, error) {
	if !c.IsNative() {
		return nil, ErrUnsupported
	}
	return nil, fmt.Errorf("gallery on %s: %w", c.Platform(), ErrUnsupported)
}

// PickFiles reads the given paths into memory
func (c *Capabilities) PickFiles(paths ...string) ([]PickedFile, error) {
	files := make([]PickedFile, 0, len(paths))
	for _, path := range paths {
		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s': %w", path, err)
		}

		files = append(files, PickedFile{
			Name: filepath.Base(path),
			Mime: http.DetectContentType(data),
			Data: data,
		})
	}
	return files, nil
}

// ShareFile hands url to the configured share command. It returns false
// when sharing is not configured.
func (c *Capabilities) ShareFile(ctx context.Context, url, title string) (bool, error) {
	if len(c.share) == 0 {
		return false, nil
	}

	args := append(c.share[1:len(c.share):len(c.share)], url)
	cmd := exec.CommandContext(ctx, c.share[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return false, fmt.Errorf("failed to share '%s': %w: %s", title, err, strings.TrimSpace(string(output)))
	}

	c.log.Debug("Shared '%s' via %s", title, c.share[0])
	return true, nil
}

// DownloadFile streams url into the documents directory and returns the
// written path.
func (c *Capabilities) DownloadFile(ctx context.Context, url, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download '%s': %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to download '%s': %s", filename, resp.Status)
	}

	return c.save(filename, resp.Body)
}

func (c *Capabilities) save(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename '%s'", filename)
	}

	if err := c.fs.MkdirAll(c.docs, 0o755); err != nil {
		return "", fmt.Errorf("failed to create documents directory: %w", err)
	}

	path := filepath.Join(c.docs, name)
	f, err := c.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create '%s': %w", path, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := c.fs.Remove(path); rerr != nil {
			c.log.Warn("Failed to remove partial file '%s': %v", path, rerr)
		}
		return "", fmt.Errorf("failed to write '%s': %w", path, err)
	}

	c.log.Info("Saved '%s' (%d bytes)", path, n)
	return path, nil
}

// Base64ToFile decodes a base64 payload, with or without a data URL prefix,
// into a named in-memory file.
func Base64ToFile(payload, filename, mime string) (*PickedFile, error) {
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		if mime == "" {
			mime = strings.TrimPrefix(payload[:i], "data:")
		}
		payload = payload[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", filename, err)
	}

	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return &PickedFile{Name: filename, Mime: mime, Data: data}, nil
}
