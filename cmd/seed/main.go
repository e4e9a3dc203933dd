package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandro988/E-commerce/internal/config"
	"github.com/sandro988/E-commerce/internal/logger"
	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/service"
)

type categorySeed struct {
	Name        string
	Description string
	Parent      string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认 staff 账号
	if err := models.InitDefaultStaff(os.Getenv("EC_DEFAULT_STAFF_EMAIL"), os.Getenv("EC_DEFAULT_STAFF_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init default staff: %v", err)
	}

	// 分类树：顶级在前，子分类通过 Parent 名称引用，按顺序创建
	seeds := []categorySeed{
		{Name: "Electronics", Description: "Phones, laptops, audio and everything with a plug."},
		{Name: "Lifestyle", Description: "Everyday goods for home and travel."},
		{Name: "Accessories", Description: "Small add-ons for your devices."},
		{Name: "Audio", Description: "Headphones, earphones and speakers.", Parent: "Electronics"},
		{Name: "Wearables", Description: "Smart watches and fitness bands.", Parent: "Electronics"},
		{Name: "Chargers", Description: "Power banks, cables and adapters.", Parent: "Accessories"},
		{Name: "Bags", Description: "Backpacks and travel bags.", Parent: "Lifestyle"},
	}

	created := 0
	for _, seed := range seeds {
		name := service.TitleCase(seed.Name)
		slug := service.Slugify(name)

		var existing models.Category
		if err := models.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
			stdLog.Printf("Category already exists: %s", slug)
			continue
		}

		var parentID *uint
		if seed.Parent != "" {
			var parent models.Category
			if err := models.DB.Where("slug = ?", service.Slugify(seed.Parent)).First(&parent).Error; err != nil {
				stdLog.Printf("Skip category %s: parent %s not found", slug, seed.Parent)
				continue
			}
			parentID = &parent.ID
		}

		cat := models.Category{
			Name:           name,
			NameNormalized: strings.ToLower(name),
			Slug:           slug,
			Description:    seed.Description,
			ParentID:       parentID,
		}
		if err := models.DB.Create(&cat).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", slug, err)
			continue
		}
		stdLog.Printf("Created category: %s", slug)
		created++
	}

	fmt.Println("\nSeed finished.")
	fmt.Printf("- %d categories created (%d total in seed set)\n", created, len(seeds))
	fmt.Println("- Default staff account ensured")
}
