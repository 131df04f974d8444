package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/interface/api/rest/dto/file"
	"file-share-api/internal/interface/api/rest/middleware"
)

type AdminController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	tokens ports.TokenService,
	adminAPIKey string,
) *AdminController {
	adc := &AdminController{
		fileService: fileService,
		logger:      logger,
	}

	r.POST(RouteAdminClearFiles,
		middleware.AuthMiddleware(tokens),
		middleware.RequireAdmin(),
		middleware.AdminAPIKey(adminAPIKey),
		adc.ClearFilesHandler,
	)

	return adc
}

func (adc *AdminController) ClearFilesHandler(c *gin.Context) {
	res, err := adc.fileService.ClearAll(c.Request.Context())
	if err != nil {
		writeError(c, adc.logger, err, "Error clearing bucket")
		return
	}

	adc.logger.Info("bucket cleared",
		zap.Int("objects_deleted", res.ObjectsDeleted),
		zap.Int("errors", res.Errors),
		zap.Int64("records_deleted", res.RecordsDeleted),
	)

	c.JSON(http.StatusOK, file.ToClearResponse(*res))
}
