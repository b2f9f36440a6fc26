package configs

import (
	"fmt"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the admin account on first start. It returns the admin's
// id, or 0 when ADMIN_EMAIL/ADMIN_PASSWORD are not set.
func SeedAdmin(db *gorm.DB, cfg *Config, log *zap.Logger) (uint, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Info("skip seeding admin: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return 0, nil
	}

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("find admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash admin password: %w", err)
	}
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return 0, fmt.Errorf("create admin: %w", err)
	}
	log.Info("admin seeded", zap.String("email", email))
	return admin.ID, nil
}

type seedRestaurant struct {
	entity.Restaurant
	dishes []entity.Dish
}

func demoCatalog() []seedRestaurant {
	dish := func(name, category string, price int64, veg bool, img, desc string) entity.Dish {
		return entity.Dish{Name: name, Category: category, Price: price, IsVeg: veg,
			IsAvailable: true, ImageURL: img, Description: desc}
	}
	rest := func(name, area, cuisine string, rating float64, img string) entity.Restaurant {
		return entity.Restaurant{Name: name, Area: area, Cuisine: cuisine, Rating: rating,
			IsOpen: true, ImageURL: img}
	}
	return []seedRestaurant{
		{rest("I Love Pizza, Jourian", "Main Market", "Italian, Pizza", 4.5, "/ilovepizzapic.jpg"), []entity.Dish{
			dish("Margherita Pizza", "Pizza", 299, true, "/cheese-pizza.webp", "Classic margherita with fresh basil and mozzarella"),
			dish("Pepperoni Pizza", "Pizza", 349, false, "/cheese_burstpizza.png", "Loaded with pepperoni and cheese"),
			dish("Farmhouse Pizza", "Pizza", 399, true, "/farmhouse_pizza.jpg", "Fresh vegetables and herbs"),
			dish("Chicken Tandoori Pizza", "Pizza", 449, false, "/chicken-tandoori-pizza.jpg", "Tandoori chicken with Indian spices"),
		}},
		{rest("Sharma Fast Food", "Food Street", "Street Food, Chinese", 4.2, "/2023-10-18.webp"), []entity.Dish{
			dish("Aloo Tikki Burger", "Burgers", 149, true, "/aloo-tikki-burger-recipe-9.jpg", "Crispy potato patty burger"),
			dish("Mexican Street Corn Burger", "Burgers", 199, true, "/mexican-street-corn-burger-recipe-11-1067x1600.jpg", "Spicy corn burger with Mexican flavors"),
			dish("Peri Peri Fries", "Sides", 99, true, "/image-of-baked-crispy-peri-peri-fries-recipe-2.jpg", "Crispy fries with peri peri seasoning"),
			dish("Spicy Macaroni Salad", "Salads", 129, true, "/Spicy-Macaroni-Salad-feature-800x556.jpg", "Tangy and spicy pasta salad"),
		}},
		{rest("Coffee Express", "Central Plaza", "Café, Beverages", 4.7, "/tips-to-recognize-good-quality-coffee-424970.webp"), []entity.Dish{
			dish("Cappuccino", "Beverages", 89, true, "/NESCAFÉ Cappuccino.jpg.webp", "Rich and creamy cappuccino"),
			dish("Masala Chai", "Beverages", 49, true, "/Masala-Chai-Tea-Recipe-Card.jpg", "Traditional Indian spiced tea"),
			dish("Chocolate Milkshake", "Beverages", 129, true, "/Chocolate-Milkshake-Recipe-11.jpg", "Rich chocolate milkshake"),
			dish("Blueberry Smoothie", "Beverages", 149, true, "/Blueberry-Smoothie-main.webp", "Fresh blueberry smoothie"),
			dish("Lava Cake", "Desserts", 179, true, "/updated-lava-cakes7.webp", "Warm chocolate lava cake"),
		}},
		{rest("Taste of Punjab", "Punjab Street", "North Indian", 4.6, "/tandoori-pasta-featured.jpg"), []entity.Dish{
			dish("Paneer Tikka", "Starters", 249, true, "/paneer-pizza-recipe-1-2.jpg", "Grilled cottage cheese with spices"),
			dish("Butter Chicken", "Mains", 399, false, "", "Creamy tomato-based chicken curry"),
			dish("Tandoori Pasta", "Fusion", 299, true, "/tandoori-pasta-featured.jpg", "Indian-style spiced pasta"),
			dish("Paneer Sandwich", "Sandwiches", 179, true, "/Paneer-Sandwinch-FQ-9-2.jpg", "Grilled paneer sandwich"),
		}},
		{rest("Moonlight Cafe", "Moonlight Street", "Cafe, Desserts", 4.4, "/moonlight.jpg"), []entity.Dish{
			dish("Grilled Cheese Sandwich", "Sandwiches", 149, true, "/the-best-grilled-cheese-sandwich-wp-square-photo.jpg", "Classic grilled cheese"),
			dish("Strawberry Milkshake", "Beverages", 139, true, "/Strawberry-milkshake-frappuccino-featured.jpg", "Fresh strawberry milkshake"),
			dish("Kit Kat Milkshake", "Beverages", 159, true, "/Kit-Kat-Milkshake-14.jpg", "Chocolate Kit Kat milkshake"),
			dish("Watermelon Mojito", "Beverages", 119, true, "/watermelon-mojito-3.jpg", "Refreshing watermelon mojito"),
		}},
	}
}

// SeedDemo loads the demo restaurants and dishes once. Restaurants already
// present by name are left alone.
func SeedDemo(db *gorm.DB, ownerID uint, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		created := 0
		for _, sr := range demoCatalog() {
			var count int64
			if err := tx.Model(&entity.Restaurant{}).Where("name = ?", sr.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			rest := sr.Restaurant
			rest.OwnerID = ownerID
			if err := tx.Create(&rest).Error; err != nil {
				return fmt.Errorf("seed restaurant %s: %w", rest.Name, err)
			}
			for _, d := range sr.dishes {
				d.RestaurantID = rest.ID
				if err := tx.Create(&d).Error; err != nil {
					return fmt.Errorf("seed dish %s: %w", d.Name, err)
				}
			}
			created++
		}
		log.Info("demo catalog seeded", zap.Int("restaurants", created))
		return nil
	})
}
