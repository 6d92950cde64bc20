package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"barterhub/internal/infrastructure/storage"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
	"barterhub/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

var fileHandler *FileHandler

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

func isAllowedFileType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func sanitizeFolderName(folder string) string {
	folder = strings.ReplaceAll(folder, "..", "")
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "uploads"
	}
	return folder
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !isAllowedFileType(fileType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := sanitizeFolderName(c.FormValue("folder"))

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadFile(c.Request().Context(), src, fileType, folder)
	if err != nil {
		logger.Error("Failed to upload file: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	var req struct {
		URL string `json:"url" validate:"required,url"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	return response.Success(c, map[string]string{
		"message": "File deleted successfully",
	})
}
