package models

import "time"

// ExtractedData is the four-field record a user reviews and edits
type ExtractedData struct {
	FullName  string `json:"fullName" yaml:"fullName"`
	IDNumber  string `json:"idNumber" yaml:"idNumber"`
	IssueDate string `json:"issueDate" yaml:"issueDate"` // MM/DD/YYYY by convention, never parsed
	Address   string `json:"address" yaml:"address"`
}

// RecognitionResult is what a recognizer returns for one image
type RecognitionResult struct {
	FullText      string        `json:"fullText" yaml:"fullText"`
	ExtractedData ExtractedData `json:"extractedData" yaml:"extractedData"`
}

// SaveStatus reports the outcome of the last save attempt
type SaveStatus string

const (
	SaveIdle    SaveStatus = "idle"
	SaveSuccess SaveStatus = "success"
	SaveError   SaveStatus = "error"
)

// ImageFile is an uploaded identity-document image
type ImageFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Format      string `json:"format,omitempty"`
	Data        []byte `json:"-"`
}

// AppState is a snapshot of the state owned by a controller
type AppState struct {
	SelectedFile    *ImageFile         `json:"selected_file"`
	ImagePreviewURL string             `json:"image_preview_url,omitempty"`
	IsProcessing    bool               `json:"is_processing"`
	Result          *RecognitionResult `json:"result"`
	SaveStatus      SaveStatus         `json:"save_status"`
}

// FormState is the editable view of a result form
type FormState struct {
	Values  ExtractedData     `json:"values"`
	Touched map[string]bool   `json:"touched"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Session is one browser session: a controller plus its form
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	State     AppState  `json:"state"`
	Form      FormState `json:"form"`
}
