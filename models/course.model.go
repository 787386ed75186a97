package models

import "gorm.io/gorm"

// Course is an admin-curated catalog entry students can request funding for
type Course struct {
	gorm.Model
	Title             string  `json:"title" gorm:"not null"`
	Provider          string  `json:"provider" gorm:"not null"`
	Category          string  `json:"category" gorm:"index"`
	Price             float64 `json:"price" gorm:"default:0"`
	Duration          string  `json:"duration"` // e.g. "6 weeks"
	CertificationType string  `json:"certification_type"`
	URL               string  `json:"url"`
	IsApproved        bool    `json:"is_approved" gorm:"default:false"`
	IsDeleted         bool    `gorm:"default:false"`
}
