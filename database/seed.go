package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the default accounts and a starter menu on an empty database.
// Existing rows are left alone so it is safe to run on every boot.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedMenu(db); err != nil {
		return err
	}
	if err := seedBranch(db); err != nil {
		return err
	}
	utils.InfoLogger.Println("Seeding completed")
	return nil
}

func seedUsers(db *gorm.DB) error {
	defaults := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin User", "admin@restaurant.com", "admin123", "admin"},
		{"Cooker User", "cooker@restaurant.com", "cooker123", "cooker"},
	}

	for _, d := range defaults {
		var count int64
		db.Model(&models.User{}).Where("email = ?", d.email).Count(&count)
		if count > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Name:     d.name,
			Email:    d.email,
			Password: string(hashed),
			Role:     d.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}

		if d.role == "cooker" {
			career := models.CareerPath{
				UserID:            user.ID,
				Position:          "Head Kitchen Staff",
				Salary:            25000,
				ImprovementPoints: 100,
				Level:             2,
			}
			if err := db.Create(&career).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedMenu(db *gorm.DB) error {
	var count int64
	db.Model(&models.MenuCategory{}).Count(&count)
	if count > 0 {
		return nil
	}

	recommended := models.MenuCategory{Name: "เมนูแนะนำ", NameEn: "Recommended", SortOrder: 1}
	mainCourse := models.MenuCategory{Name: "อาหารจานหลัก", NameEn: "Main Course", SortOrder: 2}
	if err := db.Create(&recommended).Error; err != nil {
		return err
	}
	if err := db.Create(&mainCourse).Error; err != nil {
		return err
	}

	menus := []models.Menu{
		{CategoryID: recommended.ID, Name: "ข้าวผัด", NameEn: "Fried Rice", Description: "ข้าวผัดสุดอร่อย", Price: 120, Stock: 50, IsAvailable: true},
		{CategoryID: recommended.ID, Name: "ผัดไทย", NameEn: "Pad Thai", Description: "ผัดไทยสไตล์ไทยแท้", Price: 150, Stock: 50, IsAvailable: true},
	}
	return db.Create(&menus).Error
}

func seedBranch(db *gorm.DB) error {
	var count int64
	db.Model(&models.Branch{}).Count(&count)
	if count > 0 {
		return nil
	}

	branch := models.Branch{Name: "Main Branch", Address: "Bangkok", IsOpen: true}
	if err := db.Create(&branch).Error; err != nil {
		return err
	}

	for i := 1; i <= 10; i++ {
		table := models.Table{
			BranchID:    branch.ID,
			TableNumber: fmt.Sprintf("A%d", i),
			Capacity:    4,
			QRCode:      fmt.Sprintf("QR-TABLE-A%d-%s", i, uuid.NewString()),
			Status:      models.TableAvailable,
		}
		if err := db.Create(&table).Error; err != nil {
			return err
		}
	}
	return nil
}
