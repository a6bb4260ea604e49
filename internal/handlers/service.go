package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/dto"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"gorm.io/gorm"
)

// ServiceHandler coordinates service (duty rota) administration handlers.
type ServiceHandler struct {
	serviceRepo repository.ServiceRepository
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(serviceRepo repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{
		serviceRepo: serviceRepo,
	}
}

// ListServices returns every service with its members.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	serviceList, err := h.serviceRepo.ListAll()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch services")
		return
	}

	type serviceDTO struct {
		ID        uint64        `json:"id"`
		Name      string        `json:"name"`
		ManagerID uint64        `json:"manager_id"`
		Members   []dto.UserDTO `json:"members"`
	}

	serviceDTOs := make([]serviceDTO, len(serviceList))
	for i, svc := range serviceList {
		members := make([]dto.UserDTO, len(svc.Members))
		for j, member := range svc.Members {
			members[j] = dto.ToUserDTO(member)
		}
		serviceDTOs[i] = serviceDTO{
			ID:        svc.ID,
			Name:      svc.Name,
			ManagerID: svc.ManagerID,
			Members:   members,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"services": serviceDTOs,
	})
}

// CreateService creates a new service.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	type CreateServiceRequest struct {
		Name      string `json:"name" binding:"required"`
		ManagerID uint64 `json:"manager_id" binding:"required"`
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service := &models.Service{
		Name:      req.Name,
		ManagerID: req.ManagerID,
	}

	if err := h.serviceRepo.Create(service); err != nil {
		apierrors.InternalError(c, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// AddMember adds a user to a service.
func (h *ServiceHandler) AddMember(c *gin.Context) {
	serviceID, ok := serviceIDParam(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.serviceRepo.FindByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Service not found")
			return
		}
		apierrors.InternalError(c, "Failed to find service")
		return
	}

	if err := h.serviceRepo.AddMember(serviceID, req.UserID); err != nil {
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member added",
	})
}

// RemoveMember removes a user from a service.
func (h *ServiceHandler) RemoveMember(c *gin.Context) {
	serviceID, ok := serviceIDParam(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.serviceRepo.RemoveMember(serviceID, userID); err != nil {
		apierrors.InternalError(c, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed",
	})
}

// DeleteService removes a service and its memberships.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	serviceID, ok := serviceIDParam(c)
	if !ok {
		return
	}

	if err := h.serviceRepo.Delete(serviceID); err != nil {
		apierrors.InternalError(c, "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deleted",
	})
}

func serviceIDParam(c *gin.Context) (uint64, bool) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid service ID")
		return 0, false
	}
	return serviceID, true
}
