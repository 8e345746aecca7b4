package models

import (
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
)

// SaveLocation tells the caller where a write ended up. Writes are
// three-valued: server, local fallback, or failed outright (failed surfaces
// as an error, never as a SaveLocation).
type SaveLocation string

const (
	SavedToServer SaveLocation = "server"
	SavedToLocal  SaveLocation = "local"
)

// FormResponse is one answer to one question of one template. The ledger is
// keyed by (FormID, QuestionID); re-saving the same key overwrites.
type FormResponse struct {
	ID           identity.ID  `json:"id"`
	FormID       identity.ID  `json:"form_id" validate:"required"`
	QuestionID   int64        `json:"question_id" validate:"required"`
	QuestionType QuestionType `json:"question_type"`
	ResponseText string       `json:"response_text,omitempty"`
	ResponseFile string       `json:"response_file,omitempty"`
	FileName     string       `json:"file_name,omitempty"`
	FileType     string       `json:"file_type,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Key identifies a response within the ledger.
func (r *FormResponse) Key() ResponseKey {
	return ResponseKey{FormID: r.FormID, QuestionID: r.QuestionID}
}

type ResponseKey struct {
	FormID     identity.ID
	QuestionID int64
}

// HasPayload reports whether the response carries any answer content.
// Media answers arrive as data URIs in ResponseFile; text answers in
// ResponseText.
func (r *FormResponse) HasPayload() bool {
	return r.ResponseText != "" || r.ResponseFile != ""
}
