package config

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
	}, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.AgendaItem{},
		&models.Registration{},
		&models.Bookmark{},
		&models.EventPricing{},
		&models.PricingTier{},
		&models.Coupon{},
		&models.Payment{},
		&models.Department{},
		&models.Club{},
		&models.Mentor{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)
	seedCoupons(db)

	return db, nil
}

// InitRedis connects the client backing the rate limiter. An empty addr
// disables it.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleUser},
		{Name: models.RoleOrganizer},
		{Name: models.RoleDepartment},
		{Name: models.RoleClub},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

// seedCoupons installs the campus-wide discount codes accepted for every
// paid event.
func seedCoupons(db *gorm.DB) {
	coupons := []models.Coupon{
		{Code: "CAMPUS10", Discount: 10},
		{Code: "CAMPUS20", Discount: 20},
	}

	for _, coupon := range coupons {
		var existing models.Coupon
		result := db.Where("code = ?", coupon.Code).First(&existing)
		if result.Error != nil {
			db.Create(&coupon)
		}
	}
}
