package httpapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"skladpro/internal/domain"
	"skladpro/internal/service"
)

const sessionKey = "session"

// sessionRequired пропускает запрос только с токеном активной сессии
func (s *Server) sessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be 'Bearer <token>'"})
			return
		}
		sess, err := s.svc.Sessions.Authenticate(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// requireRole повторяет ограничения меню: раздел доступен только перечисленным ролям
func requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, currentUser(c).Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *service.Session {
	return c.MustGet(sessionKey).(*service.Session)
}

func currentUser(c *gin.Context) domain.User {
	return currentSession(c).User
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type sessionResp struct {
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
	Message string      `json:"message"`
}

// @Summary Login
// @Description Demo login: no password check, always an operator session
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} sessionResp
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, token, err := s.svc.Sessions.Login(c, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResp{Token: token, User: sess.User, Message: "Вы успешно вошли в систему"})
}

// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerReq true "Registration"
// @Success 201 {object} sessionResp
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, token, err := s.svc.Sessions.Register(c, req.Email, req.FullName, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResp{
		Token:   token,
		User:    sess.User,
		Message: "Вы зарегистрированы как " + service.RoleTitle(sess.User.Role),
	})
}

// @Summary Logout
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Sessions.Logout(c, currentSession(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary Navigation menu for the current role
// @Tags auth
// @Produce json
// @Success 200 {array} service.NavItem
// @Router /navigation [get]
func (s *Server) navigation(c *gin.Context) {
	c.JSON(http.StatusOK, service.Navigation(currentUser(c).Role))
}

// @Summary Dashboard counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (s *Server) dashboard(c *gin.Context) {
	d, err := s.svc.Dashboard.Build(c, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
