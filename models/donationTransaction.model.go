package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType defines the direction of a donation-bank transaction
type TransactionType string

const (
	TransactionTypeDonation     TransactionType = "DONATION"
	TransactionTypeDisbursement TransactionType = "DISBURSEMENT"
)

// TransactionStatus defines the status of a transaction
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFlagged   TransactionStatus = "FLAGGED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

// DonationTransaction is one append-only entry in the donation bank ledger.
// Donations credit the bank; disbursements debit it when an admin approves a
// funding request with a purchase price.
type DonationTransaction struct {
	gorm.Model
	DonorID         uint              `gorm:"default:0;index" json:"donorId"`
	TransactionType TransactionType   `gorm:"type:varchar(20);not null" json:"transactionType"`
	Amount          float64           `gorm:"not null" json:"amount"`
	BalanceBefore   float64           `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    float64           `gorm:"not null" json:"balanceAfter"`
	Status          TransactionStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
	Source          string            `gorm:"type:varchar(50)" json:"source"` // web, campaign, admin
	Description     string            `gorm:"type:text" json:"description"`

	// Payment gateway details (for donations)
	PaymentGateway     string `gorm:"type:varchar(50)" json:"paymentGateway"`
	PaymentOrderID     string `gorm:"type:varchar(100)" json:"paymentOrderId"`
	PaymentID          string `gorm:"type:varchar(100);index" json:"paymentId"`
	PaymentMethod      string `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentResponseRaw string `gorm:"type:text" json:"paymentResponseRaw"`

	// Links (for disbursements)
	RequestID uint `gorm:"default:0;index" json:"requestId"`
	StudentID uint `gorm:"default:0" json:"studentId"`

	// Admin details (for disbursements and status changes)
	AdminID uint   `gorm:"default:0" json:"adminId"`
	Reason  string `gorm:"type:text" json:"reason"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`
}

func (DonationTransaction) TableName() string {
	return "donation_transactions"
}

// DonationBankBalance computes the spendable bank total: completed donations
// in, minus completed disbursements out. Flagged and refunded donations do
// not count toward the balance. Recomputed per read, never cached.
func DonationBankBalance(db *gorm.DB) (float64, error) {
	var in, out float64

	err := db.Model(&DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND is_deleted = false",
			TransactionTypeDonation, TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&in).Error
	if err != nil {
		return 0, err
	}

	err = db.Model(&DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND is_deleted = false",
			TransactionTypeDisbursement, TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out).Error
	if err != nil {
		return 0, err
	}

	return in - out, nil
}
