package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/middleware"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func pagePermissionsFromDTO(in []dto.PagePermissionDTO) ([]models.PagePermission, bool) {
	out := make([]models.PagePermission, 0, len(in))
	for _, p := range in {
		entry := models.PagePermission{PageID: p.PageID}
		for _, a := range p.Permissions {
			action := models.PageAction(a)
			if !action.Valid() {
				return nil, false
			}
			entry.Permissions = append(entry.Permissions, action)
		}
		if len(entry.Permissions) > 0 {
			out = append(out, entry)
		}
	}
	return out, true
}

// GET /api/users — superadmins are not manageable through this UI and are
// excluded from the list.
func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
		cursor, err := usersCol.Find(ctx, bson.M{"role": bson.M{"$ne": models.RoleSuperAdmin}}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		for cursor.Next(ctx) {
			var u models.User
			if err := cursor.Decode(&u); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			users = append(users, u)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// GET /api/users/me
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /api/users
func CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var body dto.CreateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role := models.Role(body.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		perms, ok := pagePermissionsFromDTO(body.PagePermissions)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page permission action"})
			return
		}
		if role == models.RoleAdmin && len(perms) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin accounts need at least one page permission"})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		approved := body.Approved
		if role == models.RoleSuperAdmin {
			approved = true
		}

		now := time.Now().UTC()
		user := models.User{
			ID:              bson.NewObjectID(),
			Email:           strings.ToLower(strings.TrimSpace(body.Email)),
			Name:            strings.TrimSpace(body.Name),
			PasswordHash:    hash,
			Role:            role,
			Approved:        approved,
			PagePermissions: perms,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if _, err := usersCol.InsertOne(ctx, user); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already exists", "field": "email"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// PUT /api/users/:id
func UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var existing models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if existing.Role == models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "superadmin accounts cannot be edited"})
			return
		}

		var body dto.UpdateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role := existing.Role
		perms := existing.PagePermissions

		set := bson.M{}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = v
		}
		if body.Role != nil {
			role = models.Role(*body.Role)
			if !role.Valid() || role == models.RoleSuperAdmin {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
				return
			}
			set["role"] = role
		}
		if body.PagePermissions != nil {
			converted, ok := pagePermissionsFromDTO(*body.PagePermissions)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page permission action"})
				return
			}
			perms = converted
			set["pagePermissions"] = perms
		}
		if role == models.RoleAdmin && len(perms) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin accounts need at least one page permission"})
			return
		}
		if body.Approved != nil {
			set["approved"] = *body.Approved
		}
		if body.Password != nil {
			if len(*body.Password) < 8 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
				return
			}
			hash, err := utils.HashPassword(*body.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
				return
			}
			set["passwordHash"] = hash
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		if _, err := usersCol.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// PATCH /api/users/:id/permissions — flip a single checkbox.
func ToggleUserPermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var body dto.TogglePermissionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		action := models.PageAction(body.Action)
		if !action.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page permission action"})
			return
		}

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if user.Role == models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "superadmin accounts cannot be edited"})
			return
		}

		perms := models.TogglePermission(user.PagePermissions, body.PageID, action, *body.Enabled)
		if user.Role == models.RoleAdmin && len(perms) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin accounts need at least one page permission"})
			return
		}

		if _, err := usersCol.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"pagePermissions": perms,
			"updatedAt":       time.Now().UTC(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"pagePermissions": perms})
	}
}

// DELETE /api/users/:id
func DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		res, err := usersCol.DeleteOne(ctx, bson.M{
			"_id":  id,
			"role": bson.M{"$ne": models.RoleSuperAdmin},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /api/users/me/password
func ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		usersCol := database.OpenCollection("users")
		_, err = usersCol.UpdateByID(c.Request.Context(), user.ID, bson.M{
			"$set": bson.M{
				"passwordHash": newHash,
				"updatedAt":    time.Now().UTC(),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = RevokeAllRefreshTokens(c, user.ID)
		utils.ClearRefreshCookie(c)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
