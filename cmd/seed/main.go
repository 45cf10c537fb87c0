package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/domain"
	"marketplace/internal/modules/auth"
	"marketplace/internal/modules/wallet"
	"marketplace/internal/repository"
	"marketplace/internal/reqctx"
)

func main() {
	subdomain := flag.String("tenant", "demo", "subdomain of the demo tenant")
	password := flag.String("password", "password123", "password for every seeded account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(database.Options{DSN: cfg.DatabaseURL}, zap.NewNop())
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	tenants := repository.NewTenantRepository(db)
	if _, err := tenants.GetBySubdomain(context.Background(), *subdomain); err == nil {
		log.Printf("Tenant %q already seeded, nothing to do", *subdomain)
		return
	} else if !errors.Is(err, repository.ErrTenantNotFound) {
		log.Fatal("tenant lookup failed:", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal(err)
	}

	// one transaction so a failed run leaves nothing half-seeded
	err = db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, *subdomain, hash)
	})
	if err != nil {
		log.Fatal("seed failed:", err)
	}

	log.Println("Seed complete. Accounts (password: " + *password + "):")
	log.Println("  admin:    admin@" + *subdomain + ".test")
	log.Println("  provider: provider@" + *subdomain + ".test")
	log.Println("  customer: customer@" + *subdomain + ".test")
	log.Printf("Send X-Tenant-Subdomain: %s with every request", *subdomain)
}

func seed(tx *gorm.DB, subdomain, hash string) error {
	tenant := &domain.Tenant{Name: "Demo Marketplace", Subdomain: subdomain, Plan: domain.PlanPro}
	if err := repository.NewTenantRepository(tx).Create(context.Background(), tenant); err != nil {
		return err
	}
	ctx := reqctx.WithTenant(context.Background(), reqctx.Tenant{ID: tenant.ID, Subdomain: tenant.Subdomain, Name: tenant.Name})
	users := repository.NewUserRepository(tx)

	// ================== USERS ==================
	log.Println("Creating users...")
	admin := &domain.User{Email: "admin@" + subdomain + ".test", Name: "Admin", PasswordHash: hash, Role: domain.RoleAdmin}
	owner := &domain.User{Email: "provider@" + subdomain + ".test", Name: "Pat Provider", PasswordHash: hash, Role: domain.RoleProvider}
	customer := &domain.User{Email: "customer@" + subdomain + ".test", Name: "Casey Customer", PasswordHash: hash, Role: domain.RoleCustomer}
	for _, u := range []*domain.User{admin, owner, customer} {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	// ================== PROVIDER ==================
	log.Println("Creating provider...")
	now := time.Now().UTC()
	provider := &domain.ServiceProvider{
		UserID:             owner.ID,
		BusinessName:       "Sparkle Cleaning Co.",
		Description:        "Homes and offices, same week.",
		VerificationStatus: domain.VerificationVerified,
		VerifiedAt:         &now,
		CommissionRate:     decimal.NewFromInt(15),
		IsActive:           true,
		IsFeatured:         true,
	}
	if err := repository.NewProviderRepository(tx).Create(ctx, provider); err != nil {
		return err
	}

	// ================== CATALOG ==================
	log.Println("Creating catalog...")
	categories := repository.NewCategoryRepository(tx)
	cleaning := &domain.ServiceCategory{Name: "Cleaning", Slug: "cleaning", IsActive: true, SortOrder: 1}
	repairs := &domain.ServiceCategory{Name: "Repairs", Slug: "repairs", IsActive: true, SortOrder: 2}
	for _, c := range []*domain.ServiceCategory{cleaning, repairs} {
		if err := categories.Create(ctx, c); err != nil {
			return err
		}
	}

	services := repository.NewServiceRepository(tx)
	deep := &domain.Service{
		ProviderID:      provider.ID,
		CategoryID:      cleaning.ID,
		Name:            "Deep clean",
		Description:     "Top to bottom clean of a two bedroom flat.",
		BasePrice:       decimal.NewFromInt(100),
		Currency:        "USD",
		DurationMinutes: 180,
		PricingType:     domain.PricingFixed,
		IsActive:        true,
	}
	windows := &domain.Service{
		ProviderID:      provider.ID,
		CategoryID:      cleaning.ID,
		Name:            "Window cleaning",
		BasePrice:       decimal.NewFromInt(40),
		Currency:        "USD",
		DurationMinutes: 60,
		PricingType:     domain.PricingHourly,
		IsActive:        true,
	}
	for _, s := range []*domain.Service{deep, windows} {
		if err := services.Create(ctx, s); err != nil {
			return err
		}
	}
	addon := &domain.ServiceAddon{ServiceID: deep.ID, Name: "Inside the oven", Price: decimal.NewFromInt(25), IsActive: true}
	if err := services.CreateAddon(ctx, addon); err != nil {
		return err
	}

	// ================== WALLET ==================
	log.Println("Funding customer wallet...")
	_, _, err := wallet.Credit(ctx, tx, customer.ID, decimal.NewFromInt(250), wallet.Reference{
		Type:        "topup",
		Description: "Seed balance",
	})
	return err
}
