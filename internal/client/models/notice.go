package models

import "time"

// NoticeType is the category of an institutional notice.
type NoticeType string

const (
	NoticeTypePlacement  NoticeType = "PLACEMENT"
	NoticeTypeInternship NoticeType = "INTERNSHIP"
)

// Attachment is an optional file shipped inline with a notice.
type Attachment struct {
	MimeType string `json:"mimeType"`
	Bytes    []byte `json:"bytes"`
}

// Notice is a single institutional notice as fetched from the scraping
// backend and cached in the Local Store.
//
// Identity is the server-assigned ID; CustomSno is a display sequence
// number distinct from the ID and defines display order (stored ascending,
// shown descending). IsRead is the only field ever mutated locally;
// server-side updates to an already-cached notice are never applied.
type Notice struct {
	ID          string      `json:"_id"`
	CustomSno   int64       `json:"customSno"`
	Type        NoticeType  `json:"type"`
	Subject     string      `json:"subject"`
	Company     string      `json:"company"`
	Notice      string      `json:"notice"`
	HTMLContent string      `json:"htmlContent"`
	NoticeTime  time.Time   `json:"noticeTime"`
	FileBuffer  *Attachment `json:"fileBuffer,omitempty"`
	IsRead      bool        `json:"isRead"`
}
