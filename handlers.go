package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"quartermaster/models"
	"quartermaster/pkg/catalog"
	"quartermaster/pkg/scanner"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const maxScreenshotBytes = 10 * 1024 * 1024

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/ocr/scan_image", scanImageHandler)
	authGroup.POST("/stockpiles", createStockpileHandler)
	authGroup.GET("/stockpiles", listStockpilesHandler)
	authGroup.GET("/stockpiles/:id", getStockpileHandler)
	authGroup.DELETE("/stockpiles/:id", deleteStockpileHandler)
	authGroup.GET("/stockpiles/:id/items", listStockpileItemsHandler)
	authGroup.POST("/stockpiles/:id/scan", saveScanHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

// getUserFromContext fetches the authenticated user using the username set by
// jwtAuthMiddleware.
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	tokenString, err := signAccessToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refresh, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": refresh})
}

func signAccessToken(user models.User) (string, error) {
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// createAndStoreRefreshToken issues a random refresh token and stores its hash.
func createAndStoreRefreshToken(userID uint) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates
// the refresh token.
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := signAccessToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate: revoke existing and create a new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": usernameVal.(string)})
}

// scanImageHandler runs the recognition engine over an uploaded screenshot
// and returns the report. Recognition failures arrive inside the report;
// only an unreadable image is a request error.
func scanImageHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image missing"})
		return
	}
	if fileHeader.Size > maxScreenshotBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 10MB)"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
		return
	}

	report, err := scn.Scan(c.Request.Context(), data, scanner.Options{
		Faction:    catalog.ParseFaction(c.PostForm("faction")),
		Workers:    cfg.ScanWorkers,
		OCRTimeout: cfg.OCRTimeout,
	})
	if err != nil {
		if errors.Is(err, scanner.ErrImageLoad) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func createStockpileHandler(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Type         string `json:"type" binding:"required"`
		Hex          string `json:"hex"`
		LocationName string `json:"locationName"`
		Code         string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != models.StockpileTypeSeaport && req.Type != models.StockpileTypeStorageDepot {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be SEAPORT or STORAGE_DEPOT"})
		return
	}
	sp := models.Stockpile{
		Name:         req.Name,
		Type:         req.Type,
		Hex:          req.Hex,
		LocationName: req.LocationName,
		Code:         req.Code,
	}
	if err := db.Create(&sp).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "stockpile name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stockpile"})
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func listStockpilesHandler(c *gin.Context) {
	var stockpiles []models.Stockpile
	q := db.Order("name asc")
	if hex := c.Query("hex"); hex != "" {
		q = q.Where("hex = ?", hex)
	}
	if err := q.Find(&stockpiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stockpiles"})
		return
	}
	c.JSON(http.StatusOK, stockpiles)
}

func stockpileFromParam(c *gin.Context) (*models.Stockpile, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stockpile id"})
		return nil, false
	}
	var sp models.Stockpile
	if err := db.First(&sp, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stockpile not found"})
		return nil, false
	}
	return &sp, true
}

func getStockpileHandler(c *gin.Context) {
	sp, ok := stockpileFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sp)
}

func deleteStockpileHandler(c *gin.Context) {
	sp, ok := stockpileFromParam(c)
	if !ok {
		return
	}
	if err := db.Delete(sp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete stockpile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stockpile deleted"})
}

func listStockpileItemsHandler(c *gin.Context) {
	sp, ok := stockpileFromParam(c)
	if !ok {
		return
	}
	var items []models.StockpileItem
	if err := db.Where("stockpile_id = ?", sp.ID).Order("item_code asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stockpile": sp.Name, "items": items})
}

// saveScanHandler stores accepted scan results: a scan audit record plus a
// full replacement of the stockpile's current items.
func saveScanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	sp, ok := stockpileFromParam(c)
	if !ok {
		return
	}
	var req struct {
		Items []struct {
			ItemCode   string  `json:"itemCode" binding:"required"`
			Quantity   int     `json:"quantity"`
			Crated     bool    `json:"crated"`
			Confidence float64 `json:"confidence"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, it := range req.Items {
		if it.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
	}

	var avgConfidence *float64
	if len(req.Items) > 0 {
		sum := 0.0
		for _, it := range req.Items {
			sum += it.Confidence
		}
		avg := sum / float64(len(req.Items))
		avgConfidence = &avg
	}

	scan := models.StockpileScan{
		StockpileID:   sp.ID,
		ScannedByID:   user.ID,
		ItemCount:     len(req.Items),
		OCRConfidence: avgConfidence,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&scan).Error; err != nil {
			return err
		}
		for _, it := range req.Items {
			conf := it.Confidence
			scanItem := models.StockpileScanItem{
				StockpileScanID: scan.ID,
				ItemCode:        it.ItemCode,
				Quantity:        it.Quantity,
				Crated:          it.Crated,
				Confidence:      &conf,
			}
			if err := tx.Create(&scanItem).Error; err != nil {
				return err
			}
		}
		// replace the stockpile's current items with this scan's view
		if err := tx.Where("stockpile_id = ?", sp.ID).Delete(&models.StockpileItem{}).Error; err != nil {
			return err
		}
		for _, it := range req.Items {
			conf := it.Confidence
			item := models.StockpileItem{
				StockpileID: sp.ID,
				ItemCode:    it.ItemCode,
				Quantity:    it.Quantity,
				Crated:      it.Crated,
				Confidence:  &conf,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		return tx.Model(sp).Update("last_refreshed_at", &now).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save scan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scanId":     scan.ID,
		"stockpile":  sp.Name,
		"itemsSaved": len(req.Items),
	})
}
