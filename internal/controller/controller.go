// Package controller owns the per-session application state and sequences
// file selection, preview, recognition, review and save.
//
// Every file selection or reset starts a new generation. Asynchronous work
// (preview read, recognition call, save-status revert) captures the
// generation it was started under and is discarded if that generation is no
// longer current when it completes.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/images"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
)

// DefaultSaveResetDelay is how long a save status stays visible
const DefaultSaveResetDelay = 3 * time.Second

var (
	// ErrSuperseded is returned when a completion arrived after a newer
	// selection, reset or processing call and was dropped
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrSaveFailed wraps persister failures
	ErrSaveFailed = errors.New("save failed")
)

// ErrorReporter receives failures the controller does not surface as state
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}

// Persister accepts a reviewed record
type Persister interface {
	Save(ctx context.Context, data models.ExtractedData) error
}

// PreviewFunc derives a renderable preview from a file
type PreviewFunc func(file *models.ImageFile) (string, error)

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Recognizer     ocr.Recognizer
	Reporter       ErrorReporter
	Persister      Persister
	Preview        PreviewFunc
	SaveResetDelay time.Duration
	// OnResult is called, with the state lock held, whenever a recognition
	// result is applied. It must not call back into the Controller.
	OnResult func(result models.RecognitionResult)
	// OnReset is called, with the state lock held, whenever the state is
	// reset by SelectFile or ResetState. Same restriction as OnResult.
	OnReset func()
}

// Controller holds one session's state. Safe for concurrent use.
type Controller struct {
	recognizer     ocr.Recognizer
	reporter       ErrorReporter
	persister      Persister
	preview        PreviewFunc
	saveResetDelay time.Duration
	onResult       func(models.RecognitionResult)
	onReset        func()

	mu           sync.Mutex
	state        models.AppState
	generation   uint64
	processToken uint64
	saveToken    uint64
	saveTimer    *time.Timer
}

// New creates a controller in the initial state
func New(opts Options) *Controller {
	c := &Controller{
		recognizer:     opts.Recognizer,
		reporter:       opts.Reporter,
		persister:      opts.Persister,
		preview:        opts.Preview,
		saveResetDelay: opts.SaveResetDelay,
		onResult:       opts.OnResult,
		onReset:        opts.OnReset,
		state:          initialState(),
	}
	if c.reporter == nil {
		c.reporter = SlogReporter{}
	}
	if c.persister == nil {
		c.persister = LogPersister{}
	}
	if c.preview == nil {
		c.preview = images.DataURI
	}
	if c.saveResetDelay <= 0 {
		c.saveResetDelay = DefaultSaveResetDelay
	}
	return c
}

func initialState() models.AppState {
	return models.AppState{SaveStatus: models.SaveIdle}
}

// State returns a copy of the current state
func (c *Controller) State() models.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.SelectedFile != nil {
		f := *s.SelectedFile
		s.SelectedFile = &f
	}
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// SelectFile resets all state, stores file and starts deriving its preview
// in the background
func (c *Controller) SelectFile(file *models.ImageFile) {
	if file == nil {
		return
	}

	c.mu.Lock()
	c.resetLocked()
	c.state.SelectedFile = file
	gen := c.generation
	c.mu.Unlock()

	slog.Info("File selected", "file", file.Name, "size", file.Size)
	go c.readPreview(gen, file)
}

func (c *Controller) readPreview(gen uint64, file *models.ImageFile) {
	url, err := c.preview(file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		slog.Debug("Discarding stale preview", "file", file.Name)
		return
	}
	if err != nil {
		c.reporter.Report(context.Background(), "preview", err)
		return
	}
	c.state.ImagePreviewURL = url
}

// ProcessCurrentFile runs recognition on the selected file. It is a no-op
// when nothing is selected. Failures are reported and returned wrapped in
// ocr.ErrProcessingFailed; the caller may simply call it again to retry.
func (c *Controller) ProcessCurrentFile(ctx context.Context) error {
	c.mu.Lock()
	file := c.state.SelectedFile
	if file == nil {
		c.mu.Unlock()
		return nil
	}
	if c.recognizer == nil {
		c.mu.Unlock()
		err := fmt.Errorf("%w: no recognizer configured", ocr.ErrProcessingFailed)
		c.reporter.Report(ctx, "process", err)
		return err
	}
	c.processToken++
	gen, token := c.generation, c.processToken
	c.state.IsProcessing = true
	c.state.Result = nil
	c.stopSaveTimerLocked()
	c.state.SaveStatus = models.SaveIdle
	c.mu.Unlock()

	result, err := c.recognizer.ProcessImage(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || token != c.processToken {
		slog.Debug("Discarding stale recognition", "file", file.Name, "err", err)
		return ErrSuperseded
	}
	c.state.IsProcessing = false

	if err != nil {
		if !errors.Is(err, ocr.ErrProcessingFailed) {
			err = fmt.Errorf("%w: %w", ocr.ErrProcessingFailed, err)
		}
		c.reporter.Report(ctx, "process", err)
		return err
	}
	if result == nil {
		err := fmt.Errorf("%w: recognizer returned no result", ocr.ErrProcessingFailed)
		c.reporter.Report(ctx, "process", err)
		return err
	}

	r := *result
	c.state.Result = &r
	if c.onResult != nil {
		c.onResult(r)
	}
	slog.Info("Recognition result ready", "file", file.Name)
	return nil
}

// SaveResult hands data to the persister and shows the outcome as save
// status, reverting to idle after the configured delay. No other state field
// changes.
func (c *Controller) SaveResult(ctx context.Context, data models.ExtractedData) error {
	saveErr := c.persister.Save(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	status := models.SaveSuccess
	if saveErr != nil {
		saveErr = fmt.Errorf("%w: %w", ErrSaveFailed, saveErr)
		c.reporter.Report(ctx, "save", saveErr)
		status = models.SaveError
	}

	c.stopSaveTimerLocked()
	c.saveToken++
	token := c.saveToken
	c.state.SaveStatus = status
	c.saveTimer = time.AfterFunc(c.saveResetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if token != c.saveToken {
			return
		}
		c.state.SaveStatus = models.SaveIdle
		c.saveTimer = nil
	})

	return saveErr
}

// ResetState clears all state. Idempotent.
func (c *Controller) ResetState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.generation++
	c.stopSaveTimerLocked()
	c.state = initialState()
	if c.onReset != nil {
		c.onReset()
	}
}

// stopSaveTimerLocked also invalidates a timer that already fired but is
// still waiting for the lock
func (c *Controller) stopSaveTimerLocked() {
	c.saveToken++
	if c.saveTimer != nil {
		c.saveTimer.Stop()
		c.saveTimer = nil
	}
}
