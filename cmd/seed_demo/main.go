package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"partner_cabinet/internal/db"
	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/repository"
	"partner_cabinet/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// seeds a small demo dataset: a three-level referral chain, a catalog with
// nested categories and a few purchases, plus dashboard news.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	categories := repository.NewCategoryRepository(pool)
	products := repository.NewProductRepository(pool)
	purchases := repository.NewPurchaseRepository(pool)
	news := repository.NewNewsRepository(pool)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	seedUser := func(first, last, email string, referrer *int64) *domain.User {
		if existing, err := users.GetByEmail(ctx, email); err == nil {
			log.Printf("user %s already exists user_id=%s", email, existing.UserID)
			return existing
		}
		u := &domain.User{
			Email:        email,
			FirstName:    first,
			LastName:     last,
			Country:      "DE",
			PasswordHash: string(hash),
			ReferrerID:   referrer,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", email, err)
		}
		log.Printf("created user %s user_id=%s link=%s", email, u.UserID, u.ReferralLink)
		return u
	}

	root := seedUser("Anna", "Keller", "anna@example.com", nil)
	mid := seedUser("Boris", "Weber", "boris@example.com", &root.ID)
	leaf := seedUser("Clara", "Fischer", "clara@example.com", &mid.ID)
	seedUser("Dmitri", "Hoffmann", "dmitri@example.com", &root.ID)

	electronics := &domain.Category{Name: "Electronics", IsActive: true, IsRoot: true}
	if err := categories.Create(ctx, electronics); err != nil {
		log.Fatalf("create category: %v", err)
	}
	phones := &domain.Category{Name: "Phones", ParentID: &electronics.ID, IsActive: true}
	if err := categories.Create(ctx, phones); err != nil {
		log.Fatalf("create category: %v", err)
	}
	wellness := &domain.Category{Name: "Wellness", IsActive: true, IsRoot: true}
	if err := categories.Create(ctx, wellness); err != nil {
		log.Fatalf("create category: %v", err)
	}

	for _, p := range []*domain.Product{
		{Name: "Starter Phone", CategoryID: phones.ID, Price: 199.90, InStock: true, IsActive: true},
		{Name: "Pro Phone", CategoryID: phones.ID, Price: 899.00, InStock: true, IsActive: true},
		{Name: "Vitamin Pack", CategoryID: wellness.ID, Price: 24.50, InStock: true, IsActive: true},
	} {
		if err := products.Create(ctx, p); err != nil {
			log.Fatalf("create product %s: %v", p.Name, err)
		}
		log.Printf("created product %s slug=%s", p.Name, p.Slug)
	}

	first, _, err := products.List(ctx, repository.ProductFilter{PageSize: 1})
	if err != nil || len(first) == 0 {
		log.Fatalf("list products: %v", err)
	}
	purchase := &domain.Purchase{
		UserID:    leaf.ID,
		ProductID: first[0].ID,
		Quantity:  2,
		Amount:    first[0].Price * 2,
	}
	if err := purchases.Create(ctx, purchase); err != nil {
		log.Fatalf("create purchase: %v", err)
	}

	if err := news.Create(ctx, &domain.News{
		Title:   "Welcome to the partner cabinet",
		Excerpt: "Invite partners with your referral link and track your team here.",
		Body:    "Share your personal referral link from the dashboard. New registrations land in your first line automatically.",
	}); err != nil {
		log.Fatalf("create news: %v", err)
	}

	fmt.Printf("root user_id=%s\n", root.UserID)
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		service.InitJWT(secret)
		token, err := service.GenerateJWT(root.ID)
		if err != nil {
			log.Fatalf("generate token: %v", err)
		}
		fmt.Printf("token=%s\n", token)
	}
}
