package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestType discriminates the three kinds of funding request
type RequestType string

const (
	RequestTypeAvailableCourse RequestType = "available-course"
	RequestTypeNewCourse       RequestType = "new-course"
	RequestTypeCertification   RequestType = "certification"
)

// RequestStatus defines the lifecycle of a funding request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusFunded   RequestStatus = "funded"
)

// Urgency levels accepted on submission
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// FundingRequest is a student's submission asking for money toward an
// existing course, a proposed new course, or a certification. Type-specific
// fields live in the Details JSON snapshot; available-course requests also
// reference the catalog row via CourseID.
type FundingRequest struct {
	gorm.Model
	StudentID   uint          `gorm:"not null;index" json:"studentId"`
	RequestType RequestType   `gorm:"type:varchar(30);not null;index" json:"requestType"`
	Status      RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Common fields
	Reason             string `gorm:"type:text;not null" json:"reason"`
	CareerGoals        string `gorm:"type:text" json:"careerGoals"`
	PreviousExperience string `gorm:"type:text" json:"previousExperience"`
	ExpectedOutcome    string `gorm:"type:text" json:"expectedOutcome"`
	Urgency            string `gorm:"type:varchar(10);default:'medium'" json:"urgency"`

	// available-course only
	CourseID uint `gorm:"default:0;index" json:"courseId"`

	// Normalized duplicate-submission key: the course id for
	// available-course requests, the lowercased title otherwise
	TitleKey string `gorm:"type:varchar(255);index" json:"-"`

	// Full snapshot of the type-specific payload
	Details datatypes.JSON `gorm:"type:jsonb" json:"details"`

	// Review outcome
	ReviewNote    string     `gorm:"type:text" json:"reviewNote"`
	PurchasePrice float64    `gorm:"default:0" json:"purchasePrice"`
	ReviewedBy    uint       `gorm:"default:0" json:"reviewedBy"`
	ReviewedAt    *time.Time `json:"reviewedAt"`
	DisbursedAt   *time.Time `json:"disbursedAt"`

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	Documents []RequestDocument `gorm:"foreignKey:RequestID" json:"documents,omitempty"`
}

func (FundingRequest) TableName() string {
	return "funding_requests"
}

// NewCourseDetails is the Details payload for new-course requests
type NewCourseDetails struct {
	Title        string  `json:"title"`
	Provider     string  `json:"provider"`
	Category     string  `json:"category"`
	EstimatedFee float64 `json:"estimatedFee"`
	Duration     string  `json:"duration"`
	URL          string  `json:"url"`
}

// CertificationDetails is the Details payload for certification requests
type CertificationDetails struct {
	CertificationType string  `json:"certificationType"`
	Provider          string  `json:"provider"`
	EstimatedFee      float64 `json:"estimatedFee"`
	Description       string  `json:"description"`
}
