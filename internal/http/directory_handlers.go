package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"skladpro/internal/domain"
	"skladpro/internal/service"
)

type createContractorReq struct {
	Name  string                `json:"name"`
	Kind  domain.ContractorKind `json:"kind"`
	Email string                `json:"email"`
	Phone string                `json:"phone"`
}

// @Summary List contractors
// @Tags contractors
// @Produce json
// @Success 200 {array} domain.Contractor
// @Router /contractors [get]
func (s *Server) listContractors(c *gin.Context) {
	list, err := s.svc.Directory.Contractors(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Add contractor
// @Tags contractors
// @Accept json
// @Produce json
// @Param input body createContractorReq true "Contractor"
// @Success 201 {object} domain.Contractor
// @Failure 400 {object} map[string]string
// @Router /contractors [post]
func (s *Server) createContractor(c *gin.Context) {
	var req createContractorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ct, err := s.svc.Directory.AddContractor(c, domain.Contractor{
		Name: req.Name, Kind: req.Kind, Email: req.Email, Phone: req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

// @Summary List warehouse zones (operator)
// @Tags warehouse
// @Produce json
// @Success 200 {array} domain.Zone
// @Router /zones [get]
func (s *Server) listZones(c *gin.Context) {
	list, err := s.svc.Directory.Zones(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Build report (operator)
// @Tags reports
// @Produce json
// @Produce text/csv
// @Param kind path string true "receiving|shipping|stock|inventory"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} service.Report
// @Failure 400 {object} map[string]string
// @Router /reports/{kind} [get]
func (s *Server) getReport(c *gin.Context) {
	r, err := s.svc.Reports.Build(c, service.ReportKind(c.Param("kind")))
	if err != nil {
		respondError(c, err)
		return
	}
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, r)
	case "csv":
		c.Header("Content-Type", "text/csv; charset=windows-1251")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("report-%s-%s.csv", r.Kind, r.GeneratedAt.Format("20060102"))))
		c.Status(http.StatusOK)
		if err := service.WriteCSV(c.Writer, r); err != nil {
			_ = c.Error(err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format"})
	}
}
