package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resource-library/internal/app"
	"resource-library/internal/model"
	"resource-library/internal/transport/http/response"
)

type ResourceHandler struct {
	resourceService *app.ResourceService
}

type resourceView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type resourceDetailView struct {
	resourceView
	TextContent  string `json:"text_content"`
	HasEmbedding bool   `json:"has_embedding"`
}

func NewResourceHandler(resourceService *app.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) Upload(c *gin.Context) {
	input := app.IngestInput{
		URL:   c.PostForm("url"),
		Notes: c.PostForm("notes"),
		Tags:  model.ParseTags(c.PostFormArray("tags")),
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "cannot read uploaded file")
			return
		}
		defer file.Close()
		input.File = &app.UploadFile{Name: fileHeader.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.Error(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	resource, err := h.resourceService.Ingest(c.Request.Context(), input)
	if err != nil {
		writeAppError(c, err, "upload failed")
		return
	}
	response.OK(c, gin.H{"success": true, "id": resource.ID})
}

func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.resourceService.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeAppError(c, err, "list resources failed")
		return
	}
	views := make([]resourceView, 0, len(resources))
	for i := range resources {
		views = append(views, toResourceView(&resources[i]))
	}
	response.OK(c, views)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	resource, err := h.resourceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err, "get resource failed")
		return
	}
	response.OK(c, resourceDetailView{
		resourceView: toResourceView(resource),
		TextContent:  resource.TextContent,
		HasEmbedding: resource.HasEmbedding(),
	})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	err := h.resourceService.Update(c.Request.Context(), app.UpdateInput{
		ID:    id,
		Notes: c.PostForm("notes"),
		Tags:  model.ParseTags(c.PostFormArray("tags")),
	})
	if err != nil {
		writeAppError(c, err, "update resource failed")
		return
	}
	response.OK(c, gin.H{"success": true, "updated": id})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		writeAppError(c, err, "delete resource failed")
		return
	}
	response.OK(c, gin.H{"success": true, "deleted": id})
}

// writeAppError maps service errors onto HTTP statuses.
func writeAppError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrResourceNotFound):
		response.Error(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, app.ErrExtractFailed):
		response.Error(c, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func toResourceView(r *model.Resource) resourceView {
	return resourceView{
		ID:        r.ID,
		Title:     r.Title,
		Type:      r.Type,
		Notes:     r.Notes,
		Tags:      r.TagList(),
		CreatedAt: r.CreatedAt,
	}
}
