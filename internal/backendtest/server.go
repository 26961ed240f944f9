// Package backendtest hosts an in-memory stand-in for the Smart Parking REST
// backend. It exists for tests only: the real backend is a separate system,
// but client flows need something that honors the same contract end to end.
package backendtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/booking"
)

const cooldownDays = 10

// User is a registered account.
type User struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// Spot is a listed parking spot.
type Spot struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	State         string   `json:"state"`
	District      string   `json:"district"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PricePerHour  float64  `json:"pricePerHour"`
	TotalCapacity int      `json:"totalCapacity"`
	Status        string   `json:"status"`
	Cctv          bool     `json:"cctv"`
	Guard         bool     `json:"guard"`
	EvCharging    bool     `json:"evCharging"`
	Covered       bool     `json:"covered"`
	MonthlyPlan   bool     `json:"monthlyPlan"`
	VehicleTypes  []string `json:"vehicleTypes"`
	OwnerEmail    string   `json:"-"`
}

// Application is a provider application.
type Application struct {
	ID              int64
	OwnerEmail      string
	OwnerName       string
	SpotName        string
	Address         string
	TotalCapacity   int
	Status          string
	RejectionReason string
	RejectionDate   *time.Time
}

// Notification is one inbox entry for a user.
type Notification struct {
	ID        int64  `json:"id"`
	UserEmail string `json:"-"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

// Booking is a stored booking row.
type Booking struct {
	ID            int64
	UserEmail     string
	ParkingSpotID int64
	StartTime     string
	EndTime       string
	TotalPrice    float64
	Status        string
}

// Server is the fake backend plus its mutable state.
type Server struct {
	mu     sync.Mutex
	users  map[string]*User
	spots  map[int64]*Spot
	apps   map[string]*Application // keyed by owner email, one active per user
	books  map[int64]*Booking
	notes  map[int64]*Notification
	nextID int64

	// Requests counts handled requests per method+path pattern.
	Requests map[string]int

	secret []byte
	http   *httptest.Server
}

// New starts the fake backend.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:    make(map[string]*User),
		spots:    make(map[int64]*Spot),
		apps:     make(map[string]*Application),
		books:    make(map[int64]*Booking),
		notes:    make(map[int64]*Notification),
		nextID:   1,
		Requests: make(map[string]int),
		secret:   []byte("backendtest-secret"),
	}

	r := gin.New()
	r.Use(s.count())

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/forgot-password", s.ok)
		api.POST("/auth/reset-password", s.ok)

		api.GET("/parking/search", s.searchSpots)
		api.GET("/parking/nearby", s.nearbySpots)
		api.GET("/parking/all", s.allSpots)
		api.GET("/parking/:id", s.spotByID)

		authed := api.Group("/")
		authed.Use(s.requireAuth())
		{
			authed.POST("/auth/change-password", s.changePassword)

			authed.GET("/provider/application-status", s.applicationStatus)
			authed.POST("/provider/add", s.applyProvider)
			authed.GET("/provider/parkings", s.providerSpots)
			authed.GET("/provider/bookings", s.providerBookings)
			authed.PUT("/provider/toggle-status/:id", s.toggleSpot)
			authed.PUT("/provider/update/:id", s.updateSpot)
			authed.GET("/provider/dashboard", s.providerDashboard)

			authed.GET("/notifications", s.listNotifications)
			authed.PATCH("/notifications/:id/read", s.readNotification)
			authed.DELETE("/notifications/:id", s.deleteNotification)

			authed.POST("/bookings/create", s.createBooking)
			authed.GET("/bookings/my-bookings", s.myBookings)
			authed.GET("/bookings/check-availability", s.availability)
			authed.GET("/bookings/:id", s.bookingByID)
			authed.PATCH("/bookings/:id/cancel", s.cancelBooking)

			admin := authed.Group("/admin")
			admin.Use(s.requireRole("ADMIN"))
			{
				admin.GET("/provider-applications", s.pendingApplications)
				admin.GET("/view/:id", s.viewApplication)
				admin.POST("/provider/:id/:action", s.decideApplication)
				admin.GET("/stats", s.adminStats)
			}
		}
	}

	s.http = httptest.NewServer(r)
	return s
}

// BaseURL is the backend base path the gateway should use.
func (s *Server) BaseURL() string { return s.http.URL + "/api" }

// Close shuts the server down.
func (s *Server) Close() { s.http.Close() }

// Calls returns how many requests matched the method+path pattern.
func (s *Server) Calls(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Requests[pattern]
}

// ---- seeding helpers ----

// SeedUser registers an account directly.
func (s *Server) SeedUser(name, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
}

// SeedSpot lists a spot directly and returns its id.
func (s *Server) SeedSpot(spot Spot) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot.ID = s.nextID
	s.nextID++
	if spot.Status == "" {
		spot.Status = "ACTIVE"
	}
	s.spots[spot.ID] = &spot
	return spot.ID
}

// SeedApplication stores an application in the given state.
func (s *Server) SeedApplication(app Application) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	app.ID = s.nextID
	s.nextID++
	s.apps[app.OwnerEmail] = &app
	return app.ID
}

// SeedNotification stores an inbox entry for a user and returns its id.
func (s *Server) SeedNotification(email, message string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &Notification{
		ID:        s.nextID,
		UserEmail: email,
		Message:   message,
		CreatedAt: time.Now().Format(booking.TimeLayout),
	}
	s.nextID++
	s.notes[n.ID] = n
	return n.ID
}

// ---- tokens ----

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwtlib.RegisteredClaims
}

func (s *Server) mintToken(email, role string) (string, error) {
	claims := tokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(tok string) (*tokenClaims, error) {
	token, err := jwtlib.ParseWithClaims(tok, &tokenClaims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// ---- middleware ----

func (s *Server) count() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.mu.Lock()
		s.Requests[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
	}
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}
		claims, err := s.parseToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

func (s *Server) ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ---- auth ----

func (s *Server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	s.users[req.Email] = &User{Name: req.Name, Email: req.Email, PasswordHash: string(hash), Role: "USER"}
	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	u, exists := s.users[req.Email]
	s.mu.Unlock()

	// same message for unknown account and wrong password
	if !exists || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
		return
	}

	token, err := s.mintToken(u.Email, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "token error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "name": u.Name, "email": u.Email, "role": u.Role})
}

func (s *Server) changePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[c.GetString("email")]
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect old password"})
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ---- provider ----

func (s *Server) applicationStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = c.GetString("email")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, exists := s.apps[email]
	if !exists {
		c.JSON(http.StatusOK, gin.H{"status": "NONE"})
		return
	}

	out := gin.H{"status": app.Status}
	if app.Status == "REJECTED" {
		out["rejectionReason"] = app.RejectionReason
		if d := daysLeft(app.RejectionDate); d > 0 {
			out["daysLeft"] = strconv.Itoa(d)
		}
	}
	c.JSON(http.StatusOK, out)
}

func daysLeft(rejected *time.Time) int {
	if rejected == nil {
		return 0
	}
	ends := rejected.Add(cooldownDays * 24 * time.Hour)
	if !time.Now().Before(ends) {
		return 0
	}
	return int(time.Until(ends).Hours()/24) + 1
}

func (s *Server) applyProvider(c *gin.Context) {
	email := c.GetString("email")
	name := c.PostForm("name")
	owner := c.PostForm("ownerName")

	s.mu.Lock()
	defer s.mu.Unlock()
	if app, exists := s.apps[email]; exists {
		if app.Status == "REJECTED" {
			if d := daysLeft(app.RejectionDate); d > 0 {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": fmt.Sprintf("You cannot resubmit yet. Please wait %d more days.", d),
				})
				return
			}
		}
		if app.Status == "PENDING" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Application already under review"})
			return
		}
	}

	capacity, _ := strconv.Atoi(c.PostForm("totalCapacity"))
	s.apps[email] = &Application{
		ID:            s.nextID,
		OwnerEmail:    email,
		OwnerName:     owner,
		SpotName:      name,
		Address:       c.PostForm("address"),
		TotalCapacity: capacity,
		Status:        "PENDING",
	}
	s.nextID++
	c.JSON(http.StatusOK, gin.H{"message": "Application submitted successfully!"})
}

func (s *Server) providerSpots(c *gin.Context) {
	email := c.Query("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Spot{}
	for _, sp := range s.spots {
		if sp.OwnerEmail == email {
			out = append(out, sp)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) providerBookings(c *gin.Context) {
	email := c.Query("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, b := range s.books {
		sp, ok := s.spots[b.ParkingSpotID]
		if !ok || sp.OwnerEmail != email {
			continue
		}
		dto := bookingDTO(b, sp)
		dto["userEmail"] = b.UserEmail
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateSpot(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req Spot
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, exists := s.spots[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Parking spot not found"})
		return
	}
	if sp.OwnerEmail != c.GetString("email") {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not own this parking spot"})
		return
	}

	req.ID = sp.ID
	req.OwnerEmail = sp.OwnerEmail
	if req.Status == "" {
		req.Status = sp.Status
	}
	s.spots[id] = &req
	c.JSON(http.StatusOK, &req)
}

func (s *Server) toggleSpot(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, exists := s.spots[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Parking spot not found"})
		return
	}
	sp.Status = status
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

func (s *Server) providerDashboard(c *gin.Context) {
	email := c.Query("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	spots := 0
	for _, sp := range s.spots {
		if sp.OwnerEmail == email {
			spots++
		}
	}
	active := 0
	var earnings float64
	for _, b := range s.books {
		if sp, ok := s.spots[b.ParkingSpotID]; ok && sp.OwnerEmail == email {
			earnings += b.TotalPrice
			if b.Status == "CONFIRMED" {
				active++
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"totalParkings":   spots,
		"activeBookings":  active,
		"todayEarnings":   0,
		"monthlyEarnings": earnings,
	})
}

// ---- notifications ----

// notify stores an inbox entry. Caller holds the lock.
func (s *Server) notify(email, message string) {
	n := &Notification{
		ID:        s.nextID,
		UserEmail: email,
		Message:   message,
		CreatedAt: time.Now().Format(booking.TimeLayout),
	}
	s.nextID++
	s.notes[n.ID] = n
}

func (s *Server) listNotifications(c *gin.Context) {
	email := c.GetString("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Notification{}
	for _, n := range s.notes {
		if n.UserEmail == email {
			out = append(out, n)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) readNotification(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	n, exists := s.notes[id]
	if !exists || n.UserEmail != c.GetString("email") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}
	n.Read = true
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (s *Server) deleteNotification(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	n, exists := s.notes[id]
	if !exists || n.UserEmail != c.GetString("email") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}
	delete(s.notes, id)
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// ---- admin ----

func (s *Server) pendingApplications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, app := range s.apps {
		if app.Status != "PENDING" {
			continue
		}
		out = append(out, gin.H{
			"id":             app.ID,
			"status":         app.Status,
			"name":           app.SpotName,
			"submissionDate": "N/A",
			"user":           gin.H{"name": app.OwnerName, "email": app.OwnerEmail},
			"parkingSpot":    gin.H{"name": app.SpotName, "address": app.Address, "totalCapacity": app.TotalCapacity},
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) viewApplication(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.apps {
		if app.ID == id {
			c.JSON(http.StatusOK, gin.H{
				"id":      app.ID,
				"status":  app.Status,
				"name":    app.SpotName,
				"address": app.Address,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
}

func (s *Server) decideApplication(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	action := strings.ToLower(c.Param("action"))

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	var app *Application
	for _, a := range s.apps {
		if a.ID == id {
			app = a
			break
		}
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}
	if app.Status != "PENDING" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Application has already been processed"})
		return
	}

	switch action {
	case "approve":
		app.Status = "APPROVED"
		if u := s.users[app.OwnerEmail]; u != nil {
			u.Role = "PROVIDER"
		}
		spot := Spot{
			ID:            s.nextID,
			Name:          app.SpotName,
			Address:       app.Address,
			TotalCapacity: app.TotalCapacity,
			Status:        "ACTIVE",
			OwnerEmail:    app.OwnerEmail,
		}
		s.nextID++
		s.spots[spot.ID] = &spot
		s.notify(app.OwnerEmail, "Your provider application has been approved.")
		c.JSON(http.StatusOK, gin.H{"message": "Application approved successfully"})
	case "reject":
		now := time.Now()
		app.Status = "REJECTED"
		app.RejectionReason = body.Reason
		app.RejectionDate = &now
		s.notify(app.OwnerEmail, "Your provider application was rejected: "+body.Reason)
		c.JSON(http.StatusOK, gin.H{"message": "Application rejected successfully"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid action: " + action})
	}
}

func (s *Server) adminStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users, providers int64
	for _, u := range s.users {
		switch u.Role {
		case "PROVIDER":
			providers++
		case "USER":
			users++
		}
	}
	var active, cancelled int64
	var revenue float64
	for _, b := range s.books {
		switch b.Status {
		case "CONFIRMED":
			active++
			revenue += b.TotalPrice
		case "CANCELLED":
			cancelled++
		}
	}
	pending := 0
	for _, a := range s.apps {
		if a.Status == "PENDING" {
			pending++
		}
	}
	alerts := []string{}
	if pending > 0 {
		alerts = append(alerts, fmt.Sprintf("%d pending provider applications", pending))
	}
	c.JSON(http.StatusOK, gin.H{
		"totalUsers":        users,
		"totalProviders":    providers,
		"totalSpots":        int64(len(s.spots)),
		"activeBookings":    active,
		"cancelledBookings": cancelled,
		"totalRevenue":      revenue,
		"systemAlerts":      alerts,
	})
}

// ---- parking ----

func (s *Server) searchSpots(c *gin.Context) {
	state, district := c.Query("state"), c.Query("district")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Spot{}
	for _, sp := range s.spots {
		if sp.Status == "ACTIVE" && sp.State == state && sp.District == district {
			out = append(out, sp)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) nearbySpots(c *gin.Context) {
	// radius handling is the backend's concern; the fake returns everything active
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Spot{}
	for _, sp := range s.spots {
		if sp.Status == "ACTIVE" {
			out = append(out, sp)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) allSpots(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Spot{}
	for _, sp := range s.spots {
		out = append(out, sp)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) spotByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sp, exists := s.spots[id]; exists {
		c.JSON(http.StatusOK, sp)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Parking Spot not found"})
}

// ---- bookings ----

func (s *Server) createBooking(c *gin.Context) {
	var req struct {
		ParkingSpotID int64  `json:"parkingSpotId"`
		StartTime     string `json:"startTime"`
		EndTime       string `json:"endTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	start, err := time.Parse(booking.TimeLayout, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startTime"})
		return
	}
	end, err := time.Parse(booking.TimeLayout, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid endTime"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, exists := s.spots[req.ParkingSpotID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Parking Spot not found"})
		return
	}

	overlapping := 0
	for _, b := range s.books {
		if b.ParkingSpotID == sp.ID && b.Status == "CONFIRMED" && overlaps(b, req.StartTime, req.EndTime) {
			overlapping++
		}
	}
	if overlapping >= sp.TotalCapacity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Parking spot is fully booked for the selected time."})
		return
	}

	b := &Booking{
		ID:            s.nextID,
		UserEmail:     c.GetString("email"),
		ParkingSpotID: sp.ID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TotalPrice:    float64(booking.Quote(start, end, sp.PricePerHour)),
		Status:        "CONFIRMED",
	}
	s.nextID++
	s.books[b.ID] = b
	c.JSON(http.StatusOK, bookingDTO(b, sp))
}

func overlaps(b *Booking, start, end string) bool {
	// wire format sorts lexicographically
	return b.StartTime < end && start < b.EndTime
}

func bookingDTO(b *Booking, sp *Spot) gin.H {
	name := ""
	if sp != nil {
		name = sp.Name
	}
	return gin.H{
		"id":              b.ID,
		"parkingSpotId":   b.ParkingSpotID,
		"parkingSpotName": name,
		"startTime":       b.StartTime,
		"endTime":         b.EndTime,
		"totalPrice":      b.TotalPrice,
		"status":          b.Status,
	}
}

func (s *Server) myBookings(c *gin.Context) {
	email := c.GetString("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, b := range s.books {
		if b.UserEmail == email {
			out = append(out, bookingDTO(b, s.spots[b.ParkingSpotID]))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) bookingByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	b, exists := s.books[id]
	if !exists || b.UserEmail != c.GetString("email") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, bookingDTO(b, s.spots[b.ParkingSpotID]))
}

func (s *Server) cancelBooking(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	b, exists := s.books[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	if b.UserEmail != c.GetString("email") {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to cancel this booking"})
		return
	}
	if b.Status == "CANCELLED" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking is already cancelled"})
		return
	}
	b.Status = "CANCELLED"
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully. Payment refunded."})
}

func (s *Server) availability(c *gin.Context) {
	spotID, _ := strconv.ParseInt(c.Query("parkingSpotId"), 10, 64)
	start, end := c.Query("startTime"), c.Query("endTime")

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, exists := s.spots[spotID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Parking Spot not found"})
		return
	}
	booked := 0
	for _, b := range s.books {
		if b.ParkingSpotID == spotID && b.Status == "CONFIRMED" && overlaps(b, start, end) {
			booked++
		}
	}
	free := sp.TotalCapacity - booked
	if free < 0 {
		free = 0
	}
	c.JSON(http.StatusOK, free)
}
