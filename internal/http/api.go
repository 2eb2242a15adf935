package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"profilehub/internal/domain"
	"profilehub/internal/service"
	"profilehub/internal/storage"
	"profilehub/internal/upload"
)

// Stable client-facing messages. Backend error detail goes to the log,
// never into a response body.
const (
	msgFieldsRequired    = "All fields are required"
	msgInvalidEmail      = "Invalid email format"
	msgEmailExists       = "Email already exists"
	msgUserNotFound      = "User not found"
	msgInvalidPassword   = "Invalid password"
	msgLoginOK           = "Login successful"
	msgRegisterOK        = "User registered successfully"
	msgProfileOK         = "Profile added successfully"
	msgUploadOK          = "File uploaded successfully"
	msgFileRequired      = "A file is required"
	msgUnsupportedUpload = "Only jpeg, jpg, png and gif images are allowed"
	msgOneFilePerField   = "At most one file per field is allowed"
	msgInternal          = "Internal server error"
)

// Handler wires HTTP routes to domain services. A nil store means the
// deployment keeps image bytes inline; the standalone upload endpoints are
// registered only when a store is present.
type Handler struct {
	users       service.UserService
	profiles    service.ProfileService
	intake      *upload.Intake
	store       storage.Store
	logger      *logrus.Logger
	mountPrefix string
}

func NewHandler(users service.UserService, profiles service.ProfileService, intake *upload.Intake, store storage.Store, logger *logrus.Logger, mountPrefix string) *Handler {
	return &Handler{
		users:       users,
		profiles:    profiles,
		intake:      intake,
		store:       store,
		logger:      logger,
		mountPrefix: mountPrefix,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/profiles", h.listProfiles)
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/add-profile", h.addProfile)
		if h.store != nil {
			api.POST("/upload", h.uploadFile)
			api.GET("/uploads", h.listUploads)
		}
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": msgRegisterOK})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
	case errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidEmail})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgEmailExists})
	default:
		h.logger.WithError(err).Error("register user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login confirms the identity for the supplied credentials. No session or
// token is established; the response is a one-shot confirmation.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"message": msgLoginOK,
			"success": true,
		})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidPassword})
	default:
		h.logger.WithError(err).Error("authenticate user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}

func (h *Handler) addProfile(c *gin.Context) {
	profile := &domain.Profile{
		FullName: c.PostForm("fullName"),
		Mobile:   c.PostForm("mobile"),
		Email:    c.PostForm("email"),
		Location: c.PostForm("location"),
		Bio:      c.PostForm("bio"),
	}
	if profile.FullName == "" || profile.Mobile == "" || profile.Email == "" ||
		profile.Location == "" || profile.Bio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	profileImage, coverImage, err := h.intake.Images(c.Request.Context(), form)
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}
	profile.ProfileImage = stagedToImage(profileImage)
	profile.CoverImage = stagedToImage(coverImage)

	id, err := h.profiles.Create(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
			return
		}
		h.logger.WithError(err).Error("create profile")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   msgProfileOK,
		"profileId": id,
	})
}

func (h *Handler) uploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFileRequired})
		return
	}

	staged, err := h.intake.Single(c.Request.Context(), header)
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}

	filePath := service.MaterializeImage(stagedToImage(staged), h.mountPrefix)
	c.JSON(http.StatusOK, gin.H{
		"message":  msgUploadOK,
		"filePath": filePath,
	})
}

func (h *Handler) listUploads(c *gin.Context) {
	objects, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list uploads")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	resp := make([]UploadResponse, len(objects))
	for i := range objects {
		resp[i] = h.objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list profiles")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	resp := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		resp[i] = h.profileToResponse(profiles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) respondIntakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrUnsupportedFileType):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUnsupportedUpload})
	case errors.Is(err, upload.ErrTooManyFiles):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgOneFilePerField})
	default:
		h.logger.WithError(err).Error("stage upload")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}

type ProfileResponse struct {
	ID           int64   `json:"id"`
	FullName     string  `json:"fullName"`
	Mobile       string  `json:"mobile"`
	Email        string  `json:"email"`
	Location     string  `json:"location"`
	Bio          string  `json:"bio"`
	ProfileImage *string `json:"profileImage"`
	CoverImage   *string `json:"coverImage"`
	CreatedAt    string  `json:"createdAt"`
}

func (h *Handler) profileToResponse(profile domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           profile.ID,
		FullName:     profile.FullName,
		Mobile:       profile.Mobile,
		Email:        profile.Email,
		Location:     profile.Location,
		Bio:          profile.Bio,
		ProfileImage: service.MaterializeImage(profile.ProfileImage, h.mountPrefix),
		CoverImage:   service.MaterializeImage(profile.CoverImage, h.mountPrefix),
		CreatedAt:    profile.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type UploadResponse struct {
	Key          string  `json:"key"`
	URL          string  `json:"url"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func (h *Handler) objectToResponse(obj storage.ObjectInfo) UploadResponse {
	resp := UploadResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if url := service.MaterializeImage(&domain.Image{Name: obj.Key}, h.mountPrefix); url != nil {
		resp.URL = *url
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func stagedToImage(staged *upload.Staged) *domain.Image {
	if staged == nil {
		return nil
	}
	if staged.Name != "" {
		return &domain.Image{Name: staged.Name, MIME: staged.MIME}
	}
	return &domain.Image{Data: staged.Data, MIME: staged.MIME}
}
