package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/interface/api/rest/dto/file"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	tokens ports.TokenService,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	optional := middleware.OptionalAuth(tokens)
	r.POST(RouteFileUploadURL, optional, fc.GetUploadURLHandler)
	r.POST(RouteFileConfirm, optional, fc.ConfirmUploadHandler)
	r.GET(RouteFileMyUploads, middleware.AuthMiddleware(tokens), fc.MyUploadsHandler)
	r.GET(RouteFileDownload, optional, fc.DownloadHandler)
	r.GET(RouteFile, optional, fc.GetFileHandler)
	r.PATCH(RouteFile, optional, fc.UpdateFileHandler)

	return fc
}

func (fc *FileController) GetUploadURLHandler(c *gin.Context) {
	var req file.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", nil)
		return
	}

	in := domain.UploadRequest{FileName: req.FileName, MimeType: req.FileType, FileSize: req.FileSize}
	if id, ok := middleware.Identity(c); ok {
		in.UserID = &id.UserID
	}

	slot, err := fc.fileService.RequestUploadSlot(c.Request.Context(), in)
	if err != nil {
		writeError(c, fc.logger, err, "Error generating upload URL")
		return
	}

	c.JSON(http.StatusOK, file.ToUploadURLResponse(*slot))
}

func (fc *FileController) ConfirmUploadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID", nil)
		return
	}

	// the body is optional
	var req file.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body", nil)
		return
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			req.Email = nil
		} else if !validator.IsEmail(email) {
			badRequest(c, "invalid email format", nil)
			return
		} else {
			req.Email = &email
		}
	}

	var owner *uuid.UUID
	if identity, ok := middleware.Identity(c); ok {
		owner = &identity.UserID
	}

	f, err := fc.fileService.ConfirmUpload(c.Request.Context(), id, req.Email, owner)
	if err != nil {
		writeError(c, fc.logger, err, "Error confirming upload")
		return
	}

	c.JSON(http.StatusOK, file.ToConfirmResponse(*f))
}

func (fc *FileController) MyUploadsHandler(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	fls, err := fc.fileService.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, fc.logger, err, "Error fetching uploads")
		return
	}

	c.JSON(http.StatusOK, file.ResponseData{Data: file.ToUploads(fls)})
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID", nil)
		return
	}

	url, err := fc.fileService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		writeError(c, fc.logger, err, "Error generating download URL")
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID", nil)
		return
	}

	f, err := fc.fileService.GetFileDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, fc.logger, err, "Error getting file details")
		return
	}

	c.JSON(http.StatusOK, file.ToDetailsResponse(*f))
}

func (fc *FileController) UpdateFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID", nil)
		return
	}

	var req file.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", nil)
		return
	}

	f, err := fc.fileService.ApplyUpgrade(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		writeError(c, fc.logger, err, "Error updating file")
		return
	}

	c.JSON(http.StatusOK, file.ToUpgradeResponse(*f))
}
