package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/sourcegraph/conc/pool"
)

// Field names an editable detail field with its own save action
type Field string

const (
	FieldMarkers Field = "markers"
	FieldDueDate Field = "due_date"
	FieldNote    Field = "note"
)

// ErrInvalidDueDate is returned when the due date draft is not YYYY-MM-DD
var ErrInvalidDueDate = errors.New("due date must be formatted as YYYY-MM-DD")

// FilesState is a point-in-time copy of the files screen
type FilesState struct {
	Files       []models.FileSummary
	ListState   LoadState
	Detail      *models.FileDetail
	DetailState LoadState
	SelectedID  int64

	MarkerFilter string
	OcrFilter    string

	MarkersDraft []models.Marker
	NoteDraft    string
	DueDateDraft string

	Saving    map[Field]bool
	Uploading bool
	Err       string
}

// Selected returns the list entry of the current selection
func (s FilesState) Selected() (models.FileSummary, bool) {
	for _, f := range s.Files {
		if f.ID == s.SelectedID {
			return f, true
		}
	}
	return models.FileSummary{}, false
}

type FilesController struct {
	mu sync.RWMutex

	api FilesAPI
	log log.LoggerService

	files       []models.FileSummary
	listState   LoadState
	detail      *models.FileDetail
	detailState LoadState
	selectedID  int64

	markerFilter string
	ocrFilter    string

	markersDraft []models.Marker
	noteDraft    string
	dueDateDraft string

	saving    map[Field]bool
	uploading bool
	err       string
}

func NewFilesController(api FilesAPI, logger log.LoggerService) *FilesController {
	return &FilesController{
		api:          api,
		log:          logger.Named("files"),
		listState:    StateIdle,
		detailState:  StateIdle,
		markerFilter: derive.FilterAll,
		ocrFilter:    derive.FilterAll,
		saving:       make(map[Field]bool),
	}
}

// State returns a copy that is safe to render while requests are in flight
func (fc *FilesController) State() FilesState {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	var detail *models.FileDetail
	if fc.detail != nil {
		d := *fc.detail
		detail = &d
	}

	saving := make(map[Field]bool, len(fc.saving))
	for k, v := range fc.saving {
		saving[k] = v
	}

	return FilesState{
		Files:        slices.Clone(fc.files),
		ListState:    fc.listState,
		Detail:       detail,
		DetailState:  fc.detailState,
		SelectedID:   fc.selectedID,
		MarkerFilter: fc.markerFilter,
		OcrFilter:    fc.ocrFilter,
		MarkersDraft: slices.Clone(fc.markersDraft),
		NoteDraft:    fc.noteDraft,
		DueDateDraft: fc.dueDateDraft,
		Saving:       saving,
		Uploading:    fc.uploading,
		Err:          fc.err,
	}
}

// Visible returns the files passing the current filters at now
func (fc *FilesController) Visible(now time.Time) []models.FileSummary {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return derive.FilterFiles(fc.files, fc.markerFilter, fc.ocrFilter, now)
}

// PendingDetail returns the selection when its detail still has to be loaded
func (fc *FilesController) PendingDetail() (int64, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	if fc.selectedID == 0 || fc.detailState == StateLoading {
		return 0, false
	}
	if fc.detail != nil && fc.detail.ID == fc.selectedID {
		return 0, false
	}
	return fc.selectedID, true
}

func (fc *FilesController) setError(err error) {
	fc.err = err.Error()
	fc.log.Warn("%v", err)
}

// RefreshList reloads the file list. When the current selection no longer
// exists the first file becomes selected.
func (fc *FilesController) RefreshList(ctx context.Context) error {
	fc.mu.Lock()
	fc.listState = StateLoading
	fc.err = ""
	fc.mu.Unlock()

	files, err := fc.api.ListFiles(ctx)

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if err != nil {
		fc.listState = StateError
		fc.setError(err)
		return err
	}

	fc.files = files
	fc.listState = StateIdle

	exists := slices.ContainsFunc(files, func(f models.FileSummary) bool {
		return f.ID == fc.selectedID
	})
	if len(files) > 0 && (fc.selectedID == 0 || !exists) {
		fc.selectedID = files[0].ID
	}
	if len(files) == 0 {
		fc.selectedID = 0
		fc.detail = nil
	}

	return nil
}

// LoadDetail fetches the full record and resets every draft from it. A
// response for a file that is no longer selected is discarded.
func (fc *FilesController) LoadDetail(ctx context.Context, id int64) error {
	fc.mu.Lock()
	fc.detailState = StateLoading
	fc.err = ""
	fc.mu.Unlock()

	detail, err := fc.api.GetFile(ctx, id)

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// the selection moved on while the request was in flight
	if id != fc.selectedID {
		fc.log.Debug("Dropping detail of file %d, selection is %d", id, fc.selectedID)
		return nil
	}

	if err != nil {
		fc.detailState = StateError
		fc.setError(err)
		return err
	}

	fc.detail = detail
	fc.detailState = StateIdle
	fc.markersDraft = slices.Clone(detail.Markers)
	fc.noteDraft = ""
	if detail.Note != nil {
		fc.noteDraft = *detail.Note
	}
	fc.dueDateDraft = ""
	if detail.DueDate != nil {
		fc.dueDateDraft = detail.DueDate.UTC().Format(derive.DayLayout)
	}

	return nil
}

// Select makes id the current selection and loads its detail
func (fc *FilesController) Select(ctx context.Context, id int64) error {
	fc.mu.Lock()
	fc.selectedID = id
	fc.mu.Unlock()

	return fc.LoadDetail(ctx, id)
}

// SetFilters changes the list filters. When the selection is filtered out
// the first visible file is selected instead; the new selection is returned
// together with whether it changed.
func (fc *FilesController) SetFilters(markerFilter, ocrFilter string, now time.Time) (int64, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.markerFilter = markerFilter
	fc.ocrFilter = ocrFilter

	visible := derive.FilterFiles(fc.files, fc.markerFilter, fc.ocrFilter, now)
	id, ok := derive.SelectVisible(visible, fc.selectedID)
	if !ok || id == fc.selectedID {
		return fc.selectedID, false
	}

	fc.selectedID = id
	return id, true
}

// ToggleMarker adds or removes m from the markers draft
func (fc *FilesController) ToggleMarker(m models.Marker) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if i := slices.Index(fc.markersDraft, m); i >= 0 {
		fc.markersDraft = slices.Delete(fc.markersDraft, i, i+1)
		return
	}
	fc.markersDraft = append(fc.markersDraft, m)
}

func (fc *FilesController) SetNoteDraft(note string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.noteDraft = note
}

// SetDueDateDraft stores a YYYY-MM-DD date; an empty draft clears the due date on save
func (fc *FilesController) SetDueDateDraft(date string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.dueDateDraft = strings.TrimSpace(date)
}

// beginSave marks field as saving and returns the selection, or false when
// nothing is selected or the drafts do not belong to the selection yet
func (fc *FilesController) beginSave(field Field) (int64, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.selectedID == 0 || fc.detail == nil || fc.detail.ID != fc.selectedID {
		return 0, false
	}
	fc.saving[field] = true
	fc.err = ""
	return fc.selectedID, true
}

func (fc *FilesController) endSave(field Field, err error) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.saving[field] = false
	if err != nil {
		fc.setError(err)
	}
	return err
}

// refresh reloads the list and the detail of id concurrently and waits for both
func (fc *FilesController) refresh(ctx context.Context, id int64) error {
	p := pool.New().WithErrors()
	p.Go(func() error {
		return fc.RefreshList(ctx)
	})
	p.Go(func() error {
		return fc.LoadDetail(ctx, id)
	})
	return p.Wait()
}

// SaveMarkers commits the markers draft, then refreshes list and detail
func (fc *FilesController) SaveMarkers(ctx context.Context) error {
	id, ok := fc.beginSave(FieldMarkers)
	if !ok {
		return nil
	}

	fc.mu.RLock()
	markers := slices.Clone(fc.markersDraft)
	fc.mu.RUnlock()

	if err := fc.api.UpdateMarkers(ctx, id, markers); err != nil {
		return fc.endSave(FieldMarkers, err)
	}
	return fc.endSave(FieldMarkers, fc.refresh(ctx, id))
}

// ParseDueDate converts a YYYY-MM-DD draft into midnight UTC; empty means none
func ParseDueDate(draft string) (*time.Time, error) {
	if draft == "" {
		return nil, nil
	}
	due, err := time.ParseInLocation(derive.DayLayout, draft, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, draft)
	}
	return &due, nil
}

// SaveDueDate commits the due date draft, then refreshes list and detail
func (fc *FilesController) SaveDueDate(ctx context.Context) error {
	id, ok := fc.beginSave(FieldDueDate)
	if !ok {
		return nil
	}

	fc.mu.RLock()
	draft := fc.dueDateDraft
	fc.mu.RUnlock()

	due, err := ParseDueDate(draft)
	if err != nil {
		return fc.endSave(FieldDueDate, err)
	}

	if err := fc.api.UpdateDueDate(ctx, id, due); err != nil {
		return fc.endSave(FieldDueDate, err)
	}
	return fc.endSave(FieldDueDate, fc.refresh(ctx, id))
}

// SaveNote commits the note draft, then reloads the detail
func (fc *FilesController) SaveNote(ctx context.Context) error {
	id, ok := fc.beginSave(FieldNote)
	if !ok {
		return nil
	}

	fc.mu.RLock()
	note := fc.noteDraft
	fc.mu.RUnlock()

	if err := fc.api.UpdateNote(ctx, id, note); err != nil {
		return fc.endSave(FieldNote, err)
	}
	return fc.endSave(FieldNote, fc.LoadDetail(ctx, id))
}

// Upload sends a new file, refreshes the list and selects the created file
func (fc *FilesController) Upload(ctx context.Context, filename string, r io.Reader) (*models.FileSummary, error) {
	fc.mu.Lock()
	fc.uploading = true
	fc.err = ""
	fc.mu.Unlock()

	created, err := fc.api.UploadFile(ctx, filename, r)
	if err == nil {
		err = fc.RefreshList(ctx)
	}
	if err == nil {
		err = fc.Select(ctx, created.ID)
	}

	fc.mu.Lock()
	fc.uploading = false
	if err != nil {
		fc.setError(err)
	}
	fc.mu.Unlock()

	return created, err
}

// Delete removes a file and refreshes the list
func (fc *FilesController) Delete(ctx context.Context, id int64) error {
	fc.mu.Lock()
	fc.err = ""
	fc.mu.Unlock()

	if err := fc.api.DeleteFile(ctx, id); err != nil {
		fc.mu.Lock()
		fc.setError(err)
		fc.mu.Unlock()
		return err
	}

	fc.mu.Lock()
	if fc.selectedID == id {
		fc.selectedID = 0
		fc.detail = nil
	}
	fc.mu.Unlock()

	return fc.RefreshList(ctx)
}

// BulkMarkers replaces the markers of every file in ids
func (fc *FilesController) BulkMarkers(ctx context.Context, ids []int64, markers []models.Marker) error {
	return fc.bulk(ctx, func() error {
		return fc.api.BulkUpdateMarkers(ctx, ids, markers)
	})
}

// BulkDueDate sets (or clears, when nil) the due date of every file in ids
func (fc *FilesController) BulkDueDate(ctx context.Context, ids []int64, due *time.Time) error {
	return fc.bulk(ctx, func() error {
		return fc.api.BulkUpdateDueDate(ctx, ids, due)
	})
}

func (fc *FilesController) bulk(ctx context.Context, update func() error) error {
	fc.mu.Lock()
	fc.err = ""
	selected := fc.selectedID
	fc.mu.Unlock()

	if err := update(); err != nil {
		fc.mu.Lock()
		fc.setError(err)
		fc.mu.Unlock()
		return err
	}

	if selected == 0 {
		return fc.RefreshList(ctx)
	}
	return fc.refresh(ctx, selected)
}
