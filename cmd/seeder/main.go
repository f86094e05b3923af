package main

import (
	"fmt"
	"log"

	"github.com/helplink/api/internal/config"
	"github.com/helplink/api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all seeded users
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// Admin account
	seedUser(db, model.User{
		FirstName:   "HelpLink",
		LastName:    "Admin",
		Email:       "admin@helplink.local",
		Password:    string(hashedPassword),
		AccountType: model.AccountTypeAdmin,
		Badge:       model.BadgeVerified,
	}, password)

	// A user of each role
	roles := []model.AccountType{
		model.AccountTypeBeneficiary,
		model.AccountTypeDonor,
		model.AccountTypeVolunteer,
		model.AccountTypeOrganization,
	}
	for i, role := range roles {
		seedUser(db, model.User{
			FirstName:   "Demo",
			LastName:    fmt.Sprintf("User%d", i+1),
			Email:       fmt.Sprintf("%s@helplink.local", role),
			Password:    string(hashedPassword),
			AccountType: role,
			Badge:       model.BadgeVerified,
		}, password)
	}

	seedPosts(db)

	log.Println("🎉 Seeding completed!")
}

func seedUser(db *gorm.DB, user model.User, password string) {
	var existing model.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return
	}

	if err := db.Create(&user).Error; err != nil {
		log.Printf("❌ Failed to create user %s: %v", user.Email, err)
		return
	}
	log.Printf("✅ Created user: %s (%s) | Pass: %s", user.Email, user.AccountType, password)
}

func seedPosts(db *gorm.DB) {
	var beneficiary, donor model.User
	if err := db.Where("account_type = ?", model.AccountTypeBeneficiary).First(&beneficiary).Error; err != nil {
		return
	}
	if err := db.Where("account_type = ?", model.AccountTypeDonor).First(&donor).Error; err != nil {
		return
	}

	var count int64
	db.Model(&model.Post{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("🌱 Seeding demo posts...")

	request := model.Post{
		UserID:      beneficiary.ID,
		Type:        model.PostTypeRequest,
		Title:       "School supplies for 30 kids",
		Description: "Our community school needs notebooks, pens and backpacks for the incoming class.",
		Address:     "Quezon City",
		Status:      model.PostStatusActive,
	}
	if err := db.Create(&request).Error; err != nil {
		log.Printf("❌ Failed to create request post: %v", err)
	} else {
		log.Printf("✅ Created request post: %s", request.Title)
	}

	offer := model.Post{
		UserID:      donor.ID,
		Type:        model.PostTypeDonation,
		Title:       "Giving away 50 food packs",
		Description: "Rice, canned goods and noodles available for pickup this weekend.",
		Address:     "Makati",
		Status:      model.PostStatusActive,
	}
	if err := db.Create(&offer).Error; err != nil {
		log.Printf("❌ Failed to create donation post: %v", err)
	} else {
		log.Printf("✅ Created donation post: %s", offer.Title)
	}

	donation := model.Donation{
		PostID:  request.ID,
		UserID:  donor.ID,
		Amount:  2500,
		Message: "Happy to help with the supplies!",
		Status:  model.DonationStatusPending,
	}
	if err := db.Create(&donation).Error; err != nil {
		log.Printf("❌ Failed to create donation: %v", err)
	} else {
		log.Printf("✅ Created donation: %.2f on %s", donation.Amount, request.Title)
	}
}
