package models

import (
	"time"

	"gorm.io/gorm"
)

// DocumentTypes is the fixed set of supporting documents every funding
// request must carry, keyed by the multipart field name.
var DocumentTypes = []string{
	"academicTranscript",
	"marksheets",
	"bankSlip",
	"electricityBill",
	"idCard",
}

// IsValidDocumentType reports whether key is one of the five required
// document categories.
func IsValidDocumentType(key string) bool {
	for _, t := range DocumentTypes {
		if t == key {
			return true
		}
	}
	return false
}

// RequestDocument is the metadata record for one uploaded supporting file.
// The file itself lives in the document store under FilePath.
type RequestDocument struct {
	gorm.Model
	RequestID    uint      `gorm:"not null;index" json:"requestId"`
	StudentID    uint      `gorm:"not null;index" json:"studentId"`
	DocumentType string    `gorm:"type:varchar(30);not null" json:"documentType"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"originalName"`
	FileName     string    `gorm:"type:varchar(255);unique;not null" json:"fileName"`
	FilePath     string    `gorm:"type:varchar(500);not null" json:"filePath"`
	FileSize     int64     `gorm:"not null" json:"fileSize"`
	FileType     string    `gorm:"type:varchar(50);not null" json:"fileType"`
	UploadedAt   time.Time `gorm:"not null" json:"uploadedAt"`
}

func (RequestDocument) TableName() string {
	return "request_documents"
}
