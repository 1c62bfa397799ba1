package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wavelinkisp/opsboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SeedSuperAdmin upserts the built-in superadmin account. Superadmins hold
// every page permission implicitly, so none are stored.
func SeedSuperAdmin(ctx context.Context, usersCol *mongo.Collection) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	pass := os.Getenv("ADMIN_PASSWORD")

	if email == "" || pass == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()

	// Only insert if it doesn't exist
	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":           email,
			"name":            "Super Admin",
			"passwordHash":    hash,
			"role":            models.RoleSuperAdmin,
			"approved":        true,
			"pagePermissions": []models.PagePermission{},
			"createdAt":       now,
			"updatedAt":       now,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)

	res, err := usersCol.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("seed superadmin upsert failed: %w", err)
	}

	if res.UpsertedCount == 1 {
		log.Println("Superadmin user seeded:", email)
	} else {
		log.Println("Superadmin user already exists:", email)
	}

	return nil
}
