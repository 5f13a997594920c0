package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
)

func filePath(id int64, suffix string) string {
	return fmt.Sprintf("/api/files/%d%s", id, suffix)
}

// ListFiles returns all files in backend order
func (c *Client) ListFiles(ctx context.Context) ([]models.FileSummary, error) {
	var files []models.FileSummary
	if err := c.doJSON(ctx, "list files", http.MethodGet, "/api/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// ListTasks returns the files carrying a due date
func (c *Client) ListTasks(ctx context.Context) ([]models.FileSummary, error) {
	var files []models.FileSummary
	if err := c.doJSON(ctx, "list tasks", http.MethodGet, "/api/files/tasks", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) GetFile(ctx context.Context, id int64) (*models.FileDetail, error) {
	var detail models.FileDetail
	if err := c.doJSON(ctx, "load file", http.MethodGet, filePath(id, ""), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UploadFile sends r as multipart field "file" named filename
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*models.FileSummary, error) {
	const op = "upload"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Op: op, Method: http.MethodPost, Path: "/api/files/upload", Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &Error{Kind: KindEncode, Op: op, Method: http.MethodPost, Path: "/api/files/upload", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: KindEncode, Op: op, Method: http.MethodPost, Path: "/api/files/upload", Err: err}
	}

	req, err := c.newRequest(ctx, op, http.MethodPost, "/api/files/upload", &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	resp, err := c.send(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created models.FileSummary
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Method: http.MethodPost, Path: "/api/files/upload", Status: resp.StatusCode, Err: err}
	}
	return &created, nil
}

func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete file", http.MethodDelete, filePath(id, ""), nil, nil)
}

func (c *Client) UpdateMarkers(ctx context.Context, id int64, markers []models.Marker) error {
	if markers == nil {
		markers = []models.Marker{}
	}
	body := models.MarkersUpdate{Markers: markers}
	return c.doJSON(ctx, "markers update", http.MethodPatch, filePath(id, "/markers"), body, nil)
}

// UpdateDueDate sets the due date; nil clears it
func (c *Client) UpdateDueDate(ctx context.Context, id int64, due *time.Time) error {
	body := models.DueDateUpdate{DueDate: utc(due)}
	return c.doJSON(ctx, "due date update", http.MethodPatch, filePath(id, "/due-date"), body, nil)
}

func (c *Client) UpdateNote(ctx context.Context, id int64, note string) error {
	body := models.NoteUpdate{Note: note}
	return c.doJSON(ctx, "note update", http.MethodPatch, filePath(id, "/note"), body, nil)
}

func (c *Client) BulkUpdateMarkers(ctx context.Context, ids []int64, markers []models.Marker) error {
	if markers == nil {
		markers = []models.Marker{}
	}
	body := models.BulkMarkersUpdate{FileIDs: ids, Markers: markers}
	return c.doJSON(ctx, "bulk markers update", http.MethodPatch, "/api/files/bulk/markers", body, nil)
}

func (c *Client) BulkUpdateDueDate(ctx context.Context, ids []int64, due *time.Time) error {
	body := models.BulkDueDateUpdate{FileIDs: ids, DueDate: utc(due)}
	return c.doJSON(ctx, "bulk due date update", http.MethodPatch, "/api/files/bulk/due-date", body, nil)
}

// DownloadURL is the passthrough address of the stored file
func (c *Client) DownloadURL(id int64) string {
	return c.url(filePath(id, "/download"))
}

// DownloadFile streams the stored file into w and returns the number of bytes written
func (c *Client) DownloadFile(ctx context.Context, id int64, w io.Writer) (int64, error) {
	const op = "download"
	path := filePath(id, "/download")

	req, err := c.newRequest(ctx, op, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(op, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &Error{Kind: KindTransport, Op: op, Method: http.MethodGet, Path: path, Err: err}
	}
	return n, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
