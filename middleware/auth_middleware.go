package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr, os.Getenv("JWT_SECRET"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequirePagePermission loads the calling user and rejects the request
// unless they hold the given action on the given page. Superadmins pass
// implicitly; unapproved accounts never do. The loaded user is left on the
// context as "currentUser" for handlers that need it.
func RequirePagePermission(pageID string, action models.PageAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
			return
		}

		if !user.Approved && user.Role != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account pending approval"})
			return
		}

		if !user.Can(pageID, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Next()
	}
}

// CurrentUser resolves the authenticated user, fetching it once per request
// and caching it on the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	if cached, ok := c.Get("currentUser"); ok {
		if user, ok := cached.(*models.User); ok {
			return user, true
		}
	}

	idVal, ok := c.Get("userID")
	if !ok {
		return nil, false
	}
	userID, err := bson.ObjectIDFromHex(idVal.(string))
	if err != nil {
		return nil, false
	}

	usersCol := database.OpenCollection("users")
	var user models.User
	if err := usersCol.FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, false
	}

	c.Set("currentUser", &user)
	return &user, true
}
