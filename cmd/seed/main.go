package main

import (
	"vendor-service/internal/model"
	"vendor-service/internal/store"
	"vendor-service/pkg/config"
	"vendor-service/pkg/database"
	"vendor-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var vendors = []model.Vendor{
	{
		Name:        "Delight Catering Co.",
		Category:    "Catering",
		Contact:     "delight@vendor.com",
		Description: "Professional catering services for all types of events. We specialize in corporate events, weddings, and private parties.",
		Phone:       "+1-555-123-4567",
		Website:     "https://delightcatering.com",
		Address:     "123 Main Street, Downtown, NY 10001",
		Services:    []string{"Wedding Catering", "Corporate Events", "Private Parties", "Food Trucks"},
		Rating:      4.8,
		IsActive:    true,
	},
	{
		Name:        "SoundBlast Audio",
		Category:    "Audio/Visual",
		Contact:     "soundblast@vendor.com",
		Description: "Professional audio and visual equipment rental and setup services. Perfect for concerts, conferences, and events.",
		Phone:       "+1-555-987-6543",
		Website:     "https://soundblastaudio.com",
		Address:     "456 Tech Avenue, Innovation District, CA 90210",
		Services:    []string{"Audio Equipment", "Lighting Systems", "Stage Setup", "Live Streaming"},
		Rating:      4.5,
		IsActive:    true,
	},
	{
		Name:        "Capture Moments Photography",
		Category:    "Photography",
		Contact:     "capture@vendor.com",
		Description: "Professional photography services for events, weddings, and corporate functions. High-quality images and videos.",
		Phone:       "+1-555-456-7890",
		Website:     "https://capturemoments.com",
		Address:     "789 Creative Lane, Arts District, TX 75001",
		Services:    []string{"Event Photography", "Wedding Photography", "Corporate Photography", "Video Production"},
		Rating:      4.9,
		IsActive:    true,
	},
	{
		Name:        "Grand Venue Events",
		Category:    "Venue",
		Contact:     "grandvenue@vendor.com",
		Description: "Elegant event spaces for weddings, corporate events, and special occasions. Multiple locations available.",
		Phone:       "+1-555-321-6547",
		Website:     "https://grandvenueevents.com",
		Address:     "321 Elegance Boulevard, Luxury District, FL 33101",
		Services:    []string{"Wedding Venues", "Corporate Spaces", "Outdoor Events", "Catering Coordination"},
		Rating:      4.7,
		IsActive:    true,
	},
	{
		Name:        "Elite Transportation",
		Category:    "Transportation",
		Contact:     "elite@vendor.com",
		Description: "Premium transportation services for events and special occasions. Luxury vehicles and professional drivers.",
		Phone:       "+1-555-789-0123",
		Website:     "https://elitetransportation.com",
		Address:     "654 Fleet Street, Business District, IL 60601",
		Services:    []string{"Luxury Cars", "Shuttle Services", "Airport Transfers", "Wedding Transportation"},
		Rating:      4.6,
		IsActive:    true,
	},
	{
		Name:        "Stellar Entertainment",
		Category:    "Entertainment",
		Contact:     "stellar@vendor.com",
		Description: "Professional entertainment services including live bands, DJs, and performers for all types of events.",
		Phone:       "+1-555-147-2589",
		Website:     "https://stellarentertainment.com",
		Address:     "147 Music Row, Entertainment District, TN 37201",
		Services:    []string{"Live Bands", "DJ Services", "Performers", "Sound Systems"},
		Rating:      4.4,
		IsActive:    true,
	},
	{
		Name:        "Bloom & Blossom Decor",
		Category:    "Decoration",
		Contact:     "bloom@vendor.com",
		Description: "Beautiful floral arrangements and event decorations. Creating stunning atmospheres for special occasions.",
		Phone:       "+1-555-963-8520",
		Website:     "https://bloomblossom.com",
		Address:     "963 Garden Street, Nature District, OR 97201",
		Services:    []string{"Floral Arrangements", "Event Decorations", "Wedding Flowers", "Centerpieces"},
		Rating:      4.8,
		IsActive:    true,
	},
	{
		Name:        "SecureGuard Security",
		Category:    "Security",
		Contact:     "secureguard@vendor.com",
		Description: "Professional security services for events of all sizes. Licensed and trained security personnel.",
		Phone:       "+1-555-369-2580",
		Website:     "https://secureguard.com",
		Address:     "369 Safety Lane, Security District, WA 98101",
		Services:    []string{"Event Security", "Crowd Control", "VIP Protection", "Access Control"},
		Rating:      4.3,
		IsActive:    true,
	},
	{
		Name:        "TechConnect Solutions",
		Category:    "Technology",
		Contact:     "techconnect@vendor.com",
		Description: "Technology solutions for events including registration systems, live streaming, and interactive displays.",
		Phone:       "+1-555-852-9630",
		Website:     "https://techconnectsolutions.com",
		Address:     "852 Innovation Drive, Tech District, MA 02101",
		Services:    []string{"Event Registration", "Live Streaming", "Interactive Displays", "Virtual Events"},
		Rating:      4.7,
		IsActive:    true,
	},
	{
		Name:        "Green Earth Catering",
		Category:    "Catering",
		Contact:     "greenearth@vendor.com",
		Description: "Sustainable and organic catering services. Farm-to-table ingredients and eco-friendly practices.",
		Phone:       "+1-555-741-8520",
		Website:     "https://greenearthcatering.com",
		Address:     "741 Organic Way, Green District, CO 80201",
		Services:    []string{"Organic Catering", "Vegetarian Options", "Gluten-Free", "Sustainable Practices"},
		Rating:      4.6,
		IsActive:    true,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	vendorStore := store.NewVendorStore(db)

	// Clear existing vendors
	if err := vendorStore.DeleteAll(); err != nil {
		log.Fatal("Failed to clear existing vendors", zap.Error(err))
	}
	log.Info("Cleared existing vendors")

	// Insert seed vendors
	for i := range vendors {
		if err := vendorStore.Create(&vendors[i]); err != nil {
			log.Fatal("Failed to seed vendor",
				zap.String("name", vendors[i].Name),
				zap.Error(err))
		}
		log.Info("Seeded vendor",
			zap.String("name", vendors[i].Name),
			zap.String("category", vendors[i].Category))
	}
	log.Info("Vendor seeding completed successfully", zap.Int("count", len(vendors)))

	// Bootstrap the admin account if configured. Self-registration never
	// grants the admin role, so this is the only way an admin comes to exist.
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		seedAdmin(log, store.NewUserStore(db), cfg.Admin.Email, cfg.Admin.Password)
	}
}

func seedAdmin(log *zap.Logger, users *store.UserStore, email, password string) {
	if _, err := users.FindByEmail(email); err == nil {
		log.Info("Admin user already exists", zap.String("email", email))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password", zap.Error(err))
	}

	admin := model.User{
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := users.Create(&admin); err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}
	log.Info("Admin user created", zap.String("email", email))
}
