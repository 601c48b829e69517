package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"declara/models"
	"declara/pkg/roster"
	"declara/pkg/taxcal"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.GET("/taxpayers", listTaxpayersHandler)
	authGroup.POST("/taxpayers", createTaxpayerHandler)
	authGroup.GET("/taxpayers/:id", getTaxpayerHandler)
	authGroup.PUT("/taxpayers/:id", updateTaxpayerHandler)
	authGroup.DELETE("/taxpayers/:id", deleteTaxpayerHandler)
	authGroup.POST("/taxpayers/:id/notify", notifyTaxpayerHandler)
	authGroup.POST("/taxpayers/import", importTaxpayersHandler)
	authGroup.GET("/stats", statsHandler)
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

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// taxpayerView is the wire shape of a record: stored fields plus the display
// state derived from the filing date at response time.
type taxpayerView struct {
	ID               uint           `json:"id"`
	Cedula           string         `json:"cedula"`
	Nombres          string         `json:"nombres"`
	Celular          string         `json:"celular"`
	FechaVencimiento string         `json:"fechaVencimiento"`
	Notificado       bool           `json:"notificado"`
	LastNotification *string        `json:"lastNotification,omitempty"`
	DaysUntilDue     int            `json:"daysUntilDue"`
	Urgency          taxcal.Urgency `json:"urgency"`
	Actionable       bool           `json:"actionable"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func toView(tp *models.Taxpayer) taxpayerView {
	days := taxcal.DaysUntilNow(tp.FechaVencimiento)
	v := taxpayerView{
		ID:               tp.ID,
		Cedula:           tp.Cedula,
		Nombres:          tp.Nombres,
		Celular:          tp.Celular,
		FechaVencimiento: tp.FechaVencimiento,
		Notificado:       tp.Notificado,
		DaysUntilDue:     days,
		Urgency:          taxcal.Classify(days),
		Actionable:       taxcal.Actionable(days),
		CreatedAt:        tp.CreatedAt,
		UpdatedAt:        tp.UpdatedAt,
	}
	if tp.LastNotification != nil {
		s := tp.LastNotification.Format("2006-01-02")
		v.LastNotification = &s
	}
	return v
}

func toViews(items []models.Taxpayer) []taxpayerView {
	views := make([]taxpayerView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i]))
	}
	return views
}

// respondTaxpayerError maps registry errors to HTTP statuses. Unexpected
// failures are logged and surfaced generically.
func respondTaxpayerError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, ErrDuplicateCedula):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTaxpayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("taxpayer operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id64), true
}

func listTaxpayersHandler(c *gin.Context) {
	var (
		items []models.Taxpayer
		err   error
	)
	if term := c.Query("search"); term != "" {
		items, err = SearchTaxpayers(term)
	} else {
		items, err = ListTaxpayers()
	}
	if err != nil {
		respondTaxpayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViews(items))
}

func createTaxpayerHandler(c *gin.Context) {
	var req struct {
		Cedula  string `json:"cedula" binding:"required"`
		Nombres string `json:"nombres" binding:"required"`
		Celular string `json:"celular" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tp, err := CreateTaxpayer(TaxpayerInput{Cedula: req.Cedula, Nombres: req.Nombres, Celular: req.Celular})
	if err != nil {
		respondTaxpayerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toView(tp))
}

func getTaxpayerHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tp, err := GetTaxpayer(id)
	if err != nil {
		respondTaxpayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(tp))
}

func updateTaxpayerHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Cedula  string `json:"cedula" binding:"required"`
		Nombres string `json:"nombres" binding:"required"`
		Celular string `json:"celular" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tp, err := UpdateTaxpayer(id, TaxpayerInput{Cedula: req.Cedula, Nombres: req.Nombres, Celular: req.Celular})
	if err != nil {
		respondTaxpayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(tp))
}

func deleteTaxpayerHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := DeleteTaxpayer(id); err != nil {
		respondTaxpayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "taxpayer deleted"})
}

// notifyTaxpayerHandler composes the reminder and the wa.me link for a record
// and records the notification. The bookkeeping update is deliberately
// non-fatal: the operator still gets the composed message if it fails.
func notifyTaxpayerHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tp, err := GetTaxpayer(id)
	if err != nil {
		respondTaxpayerError(c, err)
		return
	}
	msg := taxcal.ReminderMessage(tp.Nombres, tp.FechaVencimiento)
	link := taxcal.WhatsAppLink(tp.Celular, msg)
	if err := MarkNotified(id); err != nil {
		log.Printf("mark notified failed for taxpayer %d: %v", id, err)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"waLink":  link,
		"sentTo":  tp.Celular,
	})
}

// importTaxpayersHandler bulk-creates records from an uploaded .xlsx roster.
func importTaxpayersHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()
	entries, err := roster.ParseReader(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workbook: " + err.Error()})
		return
	}
	result := ImportTaxpayers(entries)
	c.JSON(http.StatusCreated, result)
}

func statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ComputeStats())
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
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
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
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleNameFor(user),
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
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
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleNameFor(user),
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
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
