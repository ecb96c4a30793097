package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
	"skladpro/internal/service"
)

type createRequestReq struct {
	RequestType  domain.RequestType `json:"request_type"`
	ContractorID *int64             `json:"contractor_id"`
	Notes        *string            `json:"notes"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// @Summary List warehouse requests
// @Tags requests
// @Produce json
// @Param type query string false "receiving|shipping|inventory"
// @Param status query string false "pending|in_progress|completed|cancelled"
// @Success 200 {array} domain.Request
// @Failure 400 {object} map[string]string
// @Router /requests [get]
func (s *Server) listRequests(c *gin.Context) {
	var f repository.RequestFilter
	if v := c.Query("type"); v != "" {
		t := domain.RequestType(v)
		f.Type = &t
	}
	if v := c.Query("status"); v != "" {
		st := domain.RequestStatus(v)
		f.Status = &st
	}
	list, err := s.svc.Requests.List(c, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create warehouse request
// @Tags requests
// @Accept json
// @Produce json
// @Param input body createRequestReq true "Request"
// @Success 201 {object} domain.Request
// @Failure 400 {object} map[string]string
// @Router /requests [post]
func (s *Server) createRequest(c *gin.Context) {
	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	r, err := s.svc.Requests.Create(c, currentUser(c), service.NewRequest{
		Type: req.RequestType, ContractorID: req.ContractorID, Notes: req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary Get warehouse request
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} domain.Request
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (s *Server) getRequest(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	r, err := s.svc.Requests.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary Update request status (any transition allowed)
// @Tags requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param input body updateStatusReq true "Status"
// @Success 200 {object} domain.Request
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id}/status [put]
func (s *Server) updateRequestStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	r, err := s.svc.Requests.UpdateStatus(c, id, domain.RequestStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
