package services

import (
	"time"

	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// PaymentService sweeps pending PromptPay payments whose window has
// closed and marks them expired.
type PaymentService struct {
	db       *gorm.DB
	stopChan chan struct{}
	interval time.Duration
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{
		db:       db,
		stopChan: make(chan struct{}),
		interval: time.Minute,
	}
}

// StartTimeoutChecker runs the expiry sweep in a goroutine.
func (s *PaymentService) StartTimeoutChecker() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.CheckExpiredPayments()
			case <-s.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Payment timeout checker started")
}

func (s *PaymentService) Stop() {
	close(s.stopChan)
}

// CheckExpiredPayments marks overdue pending payments as expired. The
// order itself stays open so the guest can pay again by another method.
func (s *PaymentService) CheckExpiredPayments() {
	var payments []models.Payment
	if err := s.db.Where("status = ?", models.PaymentRecordPending).Find(&payments).Error; err != nil {
		utils.ErrorLogger.Printf("Error checking expired payments: %v", err)
		return
	}

	now := time.Now()
	for i := range payments {
		payment := &payments[i]
		if payment.ExpiredAt == nil || now.Before(*payment.ExpiredAt) {
			continue
		}

		payment.Status = models.PaymentRecordExpired
		if err := s.db.Save(payment).Error; err != nil {
			utils.ErrorLogger.Printf("Error expiring payment %d: %v", payment.ID, err)
			continue
		}

		var order models.Order
		if err := s.db.First(&order, payment.OrderID).Error; err == nil {
			board.BroadcastPaymentUpdate(*payment, order)
		}

		utils.InfoLogger.Printf("Payment %d for order %d expired", payment.ID, payment.OrderID)
	}
}
