package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"staylix/internal/config"
	"staylix/internal/database"
	"staylix/internal/domain"
	jwtsvc "staylix/internal/pkg/jwt"
	"staylix/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	for _, table := range []string{"bookings", "discounts", "rooms", "hotels", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)
	discountRepo := repository.NewDiscountRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")
	newUser := func(name, email, password string, role domain.UserRole) domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("bcrypt:", err)
		}
		u := domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatalf("create user %s: %v", email, err)
		}
		log.Printf("%s created: %s / %s", role, email, password)
		return u
	}

	admin := newUser("Admin", "admin@staylix.local", "admin123", domain.RoleAdmin)
	owner := newUser("Meera Owner", "owner@staylix.local", "owner123", domain.RoleOwner)
	traveler := newUser("Ravi Traveler", "traveler@staylix.local", "traveler123", domain.RoleUser)

	// ================== CATALOG ==================
	log.Println("Creating hotel and rooms...")
	hotel := domain.Hotel{
		OwnerID:     owner.ID,
		Name:        "Lakeside Retreat",
		Address:     domain.Address{City: "Udaipur", State: "Rajasthan", Country: "India", Pincode: "313001"},
		Description: "Quiet rooms overlooking Lake Pichola",
		Amenities:   []string{"wifi", "breakfast", "pool"},
		IsActive:    true,
	}
	if err := catalog.CreateHotel(ctx, &hotel); err != nil {
		log.Fatal("create hotel:", err)
	}

	rooms := []domain.Room{
		{Title: "Standard Single", RoomType: domain.RoomSingle, PricePerNight: decimal.NewFromInt(1800), TotalRooms: 5},
		{Title: "Lake View Double", RoomType: domain.RoomDouble, PricePerNight: decimal.NewFromInt(3200), TotalRooms: 3},
		{Title: "Royal Suite", RoomType: domain.RoomSuite, PricePerNight: decimal.NewFromInt(9500), TotalRooms: 1},
	}
	for i := range rooms {
		rooms[i].HotelID = hotel.ID
		if err := catalog.CreateRoom(ctx, &rooms[i]); err != nil {
			log.Fatal("create room:", err)
		}
	}

	// ================== DISCOUNTS ==================
	log.Println("Creating discounts...")
	now := time.Now().UTC()
	limit := 100
	requester := owner.ID
	discounts := []domain.Discount{
		{
			Code:             "WELCOME10",
			Description:      "10% off your first stay",
			DiscountType:     domain.DiscountPercentage,
			DiscountValue:    decimal.NewFromInt(10),
			MinBookingAmount: decimal.NewFromInt(1000),
			StartDate:        now.AddDate(0, -1, 0),
			EndDate:          now.AddDate(1, 0, 0),
			UsageLimit:       &limit,
			IsActive:         true,
			CreatedBy:        admin.ID,
			RequestStatus:    domain.RequestApproved,
		},
		{
			Code:             "LAKE500",
			Description:      "Flat 500 off at Lakeside Retreat",
			DiscountType:     domain.DiscountFixed,
			DiscountValue:    decimal.NewFromInt(500),
			MinBookingAmount: decimal.NewFromInt(3000),
			ApplicableHotels: []int64{hotel.ID},
			StartDate:        now.AddDate(0, -1, 0),
			EndDate:          now.AddDate(0, 6, 0),
			IsActive:         true,
			CreatedBy:        admin.ID,
			RequestStatus:    domain.RequestApproved,
		},
		{
			Code:             "MONSOON20",
			Description:      "Owner request: monsoon season",
			DiscountType:     domain.DiscountPercentage,
			DiscountValue:    decimal.NewFromInt(20),
			MinBookingAmount: decimal.Zero,
			ApplicableHotels: []int64{hotel.ID},
			StartDate:        now,
			EndDate:          now.AddDate(0, 3, 0),
			IsActive:         false,
			CreatedBy:        owner.ID,
			RequestStatus:    domain.RequestPending,
			RequestedBy:      &requester,
		},
	}
	for i := range discounts {
		if err := discountRepo.Create(ctx, &discounts[i]); err != nil {
			log.Fatal("create discount:", err)
		}
	}

	// ================== TOKENS ==================
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	fmt.Println()
	fmt.Println("Dev tokens:")
	for _, u := range []domain.User{admin, owner, traveler} {
		tok, err := j.GenerateToken(u.ID, string(u.Role))
		if err != nil {
			log.Fatal("token:", err)
		}
		fmt.Printf("  %-6s %s\n", u.Role, tok)
	}
	fmt.Printf("\nHotel %d owned by user %d, rooms:", hotel.ID, owner.ID)
	for _, r := range rooms {
		fmt.Printf(" %d", r.ID)
	}
	fmt.Println()
	log.Println("Seed completed")
}
