package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/entities"
)

const (
	msgSignupFailed = "Error occurred during signup"
	msgLoginFailed  = "Error occurred during login"
)

// AuditLogger records account events. Implemented by audit.Service.
type AuditLogger interface {
	LogAuth(userID string, action entities.AuditAction, ipAddr, userAgent, reason string)
}

// UploadedFiles exposes the objects the upload middleware stored for the
// current request. Release discards them once signup has failed.
type UploadedFiles interface {
	Refs(c *gin.Context) (profileImage, identityDocument *string)
	Release(c *gin.Context)
}

// signupRequest accepts both multipart forms and JSON bodies.
type signupRequest struct {
	Name                 string                `form:"name" json:"name"`
	Email                string                `form:"email" json:"email"`
	Password             string                `form:"password" json:"password"`
	Phone                string                `form:"phone" json:"phone"`
	UserType             string                `form:"userType" json:"userType"`
	City                 string                `form:"city" json:"city"`
	State                string                `form:"state" json:"state"`
	Country              string                `form:"country" json:"country"`
	Latitude             *float64              `form:"latitude" json:"latitude"`
	Longitude            *float64              `form:"longitude" json:"longitude"`
	Coordinates          *entities.Coordinates `form:"-" json:"coordinates"`
	Expertise            string                `form:"expertise" json:"expertise"`
	Experience           string                `form:"experience" json:"experience"`
	ExpectedCompensation string                `form:"expectedCompensation" json:"expectedCompensation"`
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	UserType     entities.UserType `json:"userType"`
	ProfileImage *string           `json:"profileImage"`
}

// UserResponse wraps the profile returned by /user/me.
type UserResponse struct {
	User    *entities.User `json:"user"`
	Success bool           `json:"success"`
}

// MessageResponse is the shape of every other auth response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service *Service
	cookie  *SessionCookie
	guard   *Guard
	uploads UploadedFiles
	audit   AuditLogger
}

// NewAuthController creates a new authentication controller. uploads and
// audit may be nil.
func NewAuthController(service *Service, cookie *SessionCookie, guard *Guard, uploads UploadedFiles, audit AuditLogger) *AuthController {
	return &AuthController{
		service: service,
		cookie:  cookie,
		guard:   guard,
		uploads: uploads,
		audit:   audit,
	}
}

// RegisterRoutes registers authentication routes on the router. Middleware in
// signupChain runs before the signup handler (the upload pipeline).
func (ac *AuthController) RegisterRoutes(router gin.IRouter, signupChain ...gin.HandlerFunc) {
	router.POST("/signup", append(signupChain, ac.Signup)...)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/user/me", ac.guard.Handler(), ac.Me)
}

// Signup handles POST /signup.
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.signupFailed(c, ErrValidation)
		return
	}

	in := SignupInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		Phone:                req.Phone,
		UserType:             entities.UserType(req.UserType),
		City:                 req.City,
		State:                req.State,
		Country:              req.Country,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		Expertise:            req.Expertise,
		Experience:           req.Experience,
		ExpectedCompensation: req.ExpectedCompensation,
	}
	if req.Coordinates != nil {
		in.Latitude = req.Coordinates.Latitude
		in.Longitude = req.Coordinates.Longitude
	}
	if ac.uploads != nil {
		in.ProfileImage, in.IdentityDocument = ac.uploads.Refs(c)
	}

	user, err := ac.service.Signup(c.Request.Context(), in)
	if err != nil {
		ac.signupFailed(c, err)
		return
	}

	ac.logAuth(c, user.ID, entities.AuditActionSignup, "")
	c.JSON(http.StatusCreated, MessageResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

func (ac *AuthController) signupFailed(c *gin.Context, err error) {
	if ac.uploads != nil {
		ac.uploads.Release(c)
	}

	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Signup error: %v", err)
		message = msgSignupFailed
	}
	ac.logAuth(c, "", entities.AuditActionSignup, message)
	c.JSON(status, MessageResponse{Success: false, Message: message})
}

// Login handles POST /login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Success: false, Message: MsgMissingCredentials})
		return
	}

	session, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, message := StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Login error: %v", err)
			message = msgLoginFailed
		}
		ac.logAuth(c, "", entities.AuditActionLogin, message)
		c.JSON(status, MessageResponse{Success: false, Message: message})
		return
	}

	ac.cookie.Attach(c.Writer, session.Token)
	ac.logAuth(c, session.User.ID, entities.AuditActionLogin, "")
	c.JSON(http.StatusOK, LoginResponse{
		Success:      true,
		Message:      "Login successful",
		UserType:     session.User.UserType,
		ProfileImage: session.User.ProfileImage,
	})
}

// Logout handles POST /logout. It always succeeds, with or without a session.
func (ac *AuthController) Logout(c *gin.Context) {
	var userID string
	if identity, err := ac.guard.Authenticate(c.Request); err == nil {
		userID = identity.UserID
	}

	ac.cookie.Clear(c.Writer)
	ac.logAuth(c, userID, entities.AuditActionLogout, "")
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Logged out successfully"})
}

// Me handles GET /user/me. Must run behind the guard.
func (ac *AuthController) Me(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Success: false, Message: MsgUnauthenticated})
		return
	}

	user, err := ac.service.UserInfo(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Success: false, Message: MsgUserNotFound})
			return
		}
		log.Printf("Error fetching user info: %v", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{Success: false, Message: MsgServerError})
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: user, Success: true})
}

func (ac *AuthController) logAuth(c *gin.Context, userID string, action entities.AuditAction, reason string) {
	if ac.audit == nil {
		return
	}
	ac.audit.LogAuth(userID, action, c.ClientIP(), c.Request.UserAgent(), reason)
}
