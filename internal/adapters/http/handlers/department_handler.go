// Package handlers - department HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Haleralex/orghub/internal/adapters/http/middleware"
	"github.com/Haleralex/orghub/internal/domain/entities"
	domainErrors "github.com/Haleralex/orghub/internal/domain/errors"
	"github.com/Haleralex/orghub/internal/pkg/apiresp"
)

// DepartmentDirectory is the persistence surface the handler needs.
type DepartmentDirectory interface {
	Create(ctx context.Context, dept *entities.Department) (apiresp.Resp, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (apiresp.Resp, error)
	Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (apiresp.Resp, error)
	Delete(ctx context.Context, id uuid.UUID) (apiresp.Resp, error)
	FindByID(ctx context.Context, id uuid.UUID) (apiresp.Resp, error)
	List(ctx context.Context) (apiresp.Resp, error)
}

// DepartmentHandler serves the department tree API.
type DepartmentHandler struct {
	directory DepartmentDirectory
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(directory DepartmentDirectory) *DepartmentHandler {
	return &DepartmentHandler{directory: directory}
}

// CreateDepartmentRequest is the request body for creating a department.
type CreateDepartmentRequest struct {
	Name      string  `json:"name" binding:"required,department_name"`
	ParentID  *string `json:"parent_id" binding:"omitempty,uuid"`
	SortOrder int32   `json:"sort_order" binding:"omitempty,min=0"`
}

// RenameDepartmentRequest is the request body for renaming a department.
type RenameDepartmentRequest struct {
	Name string `json:"name" binding:"required,department_name"`
}

// MoveDepartmentRequest is the request body for reparenting a department.
// A null parent_id moves the department to the top level.
type MoveDepartmentRequest struct {
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// DepartmentIDParam is the department ID from the URL.
type DepartmentIDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// respond serializes the outcome and writes it with a status derived from
// the result tier: hard errors are 500, everything else carries the given
// success status with the envelope reporting the business outcome.
func (h *DepartmentHandler) respond(c *gin.Context, operation string, okStatus int, resp apiresp.Resp, err error) {
	result := apiresp.From(resp, err)
	body := result.ToJSONStr("department " + operation + " failed")

	status := okStatus
	if !result.IsOk() {
		status = http.StatusInternalServerError
		if domainErrors.IsNotFound(result.Err()) {
			status = http.StatusNotFound
		}
	}

	middleware.RecordDepartmentOperation(operation, result.IsOk() && resp.IsSuccess())
	if result.IsOk() && !resp.IsSuccess() {
		middleware.RecordEnvelopeFailure(resp.Code())
	}

	writeEnvelope(c, status, body)
}

// CreateDepartment creates a department, optionally under a parent.
//
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if !BindJSON(c, &req) {
		return
	}

	parentID, ok := parseOptionalUUID(c, req.ParentID)
	if !ok {
		return
	}

	dept, err := entities.NewDepartment(req.Name, parentID, req.SortOrder)
	if err != nil {
		writeEnvelope(c, http.StatusBadRequest, apiresp.Error(-1, err.Error()).ToJSON())
		return
	}

	resp, err := h.directory.Create(c.Request.Context(), dept)
	h.respond(c, "create", http.StatusCreated, resp, err)
}

// GetDepartment returns a single department.
//
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	var params DepartmentIDParam
	if !BindURI(c, &params) {
		return
	}

	resp, err := h.directory.FindByID(c.Request.Context(), uuid.MustParse(params.ID))
	h.respond(c, "get", http.StatusOK, resp, err)
}

// ListDepartments returns the whole tree in rendering order.
//
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	resp, err := h.directory.List(c.Request.Context())
	h.respond(c, "list", http.StatusOK, resp, err)
}

// RenameDepartment changes a department name.
//
// POST /api/v1/departments/:id/rename
func (h *DepartmentHandler) RenameDepartment(c *gin.Context) {
	var params DepartmentIDParam
	if !BindURI(c, &params) {
		return
	}

	var req RenameDepartmentRequest
	if !BindJSON(c, &req) {
		return
	}

	resp, err := h.directory.Rename(c.Request.Context(), uuid.MustParse(params.ID), req.Name)
	h.respond(c, "rename", http.StatusOK, resp, err)
}

// MoveDepartment reparents a department.
//
// POST /api/v1/departments/:id/move
func (h *DepartmentHandler) MoveDepartment(c *gin.Context) {
	var params DepartmentIDParam
	if !BindURI(c, &params) {
		return
	}

	var req MoveDepartmentRequest
	if !BindJSON(c, &req) {
		return
	}

	parentID, ok := parseOptionalUUID(c, req.ParentID)
	if !ok {
		return
	}

	resp, err := h.directory.Move(c.Request.Context(), uuid.MustParse(params.ID), parentID)
	h.respond(c, "move", http.StatusOK, resp, err)
}

// DeleteDepartment removes a department without children.
//
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	var params DepartmentIDParam
	if !BindURI(c, &params) {
		return
	}

	resp, err := h.directory.Delete(c.Request.Context(), uuid.MustParse(params.ID))
	h.respond(c, "delete", http.StatusOK, resp, err)
}

// parseOptionalUUID parses a nullable UUID string. Returns false when the
// value is present but malformed; the error response is already written.
func parseOptionalUUID(c *gin.Context, s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		writeEnvelope(c, http.StatusBadRequest, apiresp.Error(-1, "invalid parent_id: not a UUID").ToJSON())
		return nil, false
	}
	return &id, true
}

// RegisterRoutes registers department routes.
//
// Routes:
// - POST   /departments            - Create department
// - GET    /departments            - List departments
// - GET    /departments/:id        - Get department by ID
// - POST   /departments/:id/rename - Rename department
// - POST   /departments/:id/move   - Move department
// - DELETE /departments/:id        - Delete department
func (h *DepartmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	departments := router.Group("/departments")
	{
		departments.POST("", h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.POST("/:id/rename", h.RenameDepartment)
		departments.POST("/:id/move", h.MoveDepartment)
		departments.DELETE("/:id", h.DeleteDepartment)
	}
}
