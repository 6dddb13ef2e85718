package services

import (
	"time"

	"github.com/thanakornw/dineqr/board"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

// BoardMonitor periodically pushes a fresh snapshot of active orders to
// connected board clients. It covers changes the per-request broadcasts
// miss, such as rows edited directly in the database.
type BoardMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewBoardMonitor(db *gorm.DB) *BoardMonitor {
	return &BoardMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Second,
	}
}

func (bm *BoardMonitor) Start() {
	go func() {
		ticker := time.NewTicker(bm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				bm.broadcastSnapshot()
			case <-bm.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Board monitor started")
}

func (bm *BoardMonitor) Stop() {
	close(bm.StopChan)
}

func (bm *BoardMonitor) broadcastSnapshot() {
	if board.ClientCount() == 0 {
		return
	}

	var orders []models.Order
	if err := bm.DB.Preload("OrderItems.Menu").Preload("Table").
		Where("status IN ?", []string{models.OrderPending, models.OrderCooking, models.OrderReady}).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("Error building board snapshot: %v", err)
		return
	}

	board.BroadcastMessage(board.Message{
		Event: board.EventBoardSnapshot,
		Data:  orders,
	})
}
