// Package main 系统初始化入口：建表、索引与首个管理员
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"foligo-api/internal/config"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/wire"
)

// ddlStatements 无法用 GORM 标签表达的表和索引：
// 关联表、函数式去重索引、SSO 身份唯一键。
var ddlStatements = []string{
	`CREATE TABLE IF NOT EXISTS project_skills (
		project_id uuid NOT NULL,
		skill_id   uuid NOT NULL,
		PRIMARY KEY (project_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS content_skills (
		content_id uuid NOT NULL,
		skill_id   uuid NOT NULL,
		PRIMARY KEY (content_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS content_tag_links (
		content_id uuid NOT NULL,
		tag_id     uuid NOT NULL,
		PRIMARY KEY (content_id, tag_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_name_category
		ON skills (lower(name), COALESCE(category, ''))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_content_tags_name_category
		ON content_tags (lower(name), COALESCE(category, ''))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_provider_subject
		ON identities (provider, subject)`,
}

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	db := dataLayer.PgClient.DB()

	// 3. 迁移实体表
	fmt.Println("Migrating schema...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Fatalf("failed to create pgcrypto extension: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Identity{},
		&entity.Project{},
		&entity.Content{},
		&entity.Skill{},
		&entity.ContentTag{},
		&entity.Media{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	for _, stmt := range ddlStatements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("failed to apply ddl: %v", err)
		}
	}
	fmt.Println("Schema migrated.")

	// 4. 创建首个管理员
	adminEmail := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@foligo.dev"
	}
	adminPassword := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123" // 生产环境请务必通过环境变量设置
	}

	userExists, err := dataLayer.UserRepo.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("failed to check admin existence: %v", err)
	}

	if !userExists {
		fmt.Printf("Creating admin user: %s...\n", adminEmail)
		admin := entity.NewUser(adminEmail, "System Admin")
		if err := admin.SetPassword(adminPassword); err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		if err := dataLayer.UserRepo.Create(ctx, admin); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		fmt.Println("Admin user created successfully.")
	} else {
		fmt.Printf("Admin user %s already exists.\n", adminEmail)
	}

	fmt.Println("Bootstrap completed successfully.")
}
