package endpoint

import (
	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/portal"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// LoginRequest holds the portal login id (national health id or staff id) and password.
type LoginRequest struct {
	ID       string `json:"id" example:"1234-5678-9012"`
	Password string `json:"password" example:"password123"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token    string          `json:"token"`
	Portal   auth.PortalKind `json:"portal"`
	User     model.User      `json:"user"`
	Redirect string          `json:"redirect" example:"/patient"`
}

func loginResponse(sess auth.Session) LoginResponse {
	resp := LoginResponse{Token: sess.Token, Portal: sess.Portal, User: sess.User}
	if p, ok := portal.For(sess.User.Role); ok {
		resp.Redirect = p.BasePath
	}
	return resp
}

// Login godoc
// @Summary      Portal login
// @Description  Patients log in with their ABHA ID, staff with their staff ID
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        portal path string true "patient or hospital"
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid credentials"
// @Router       /api/auth/login/{portal} [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := getAuthOrRespond(c)
	if !ok {
		return
	}

	sess, err := svc.Login(c.Request.Context(), req.ID, req.Password, auth.PortalKind(c.Param("portal")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Login successful", loginResponse(sess))
}

// Register godoc
// @Summary      Patient registration
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body auth.RegisterRequest true "Patient details"
// @Success      201 {object} util.APIResponse{data=model.User}
// @Failure      400 {object} util.APIResponse "Missing fields or duplicate ABHA ID/Aadhaar"
// @Router       /api/auth/register [post]
func Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := getAuthOrRespond(c)
	if !ok {
		return
	}

	user, err := svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Registration successful, please log in", user)
}

// Logout ends the caller's session. Calling it without a live session is
// not an error.
func Logout(c *gin.Context) {
	svc, ok := getAuthOrRespond(c)
	if !ok {
		return
	}
	token := middleware.TokenFromRequest(c)
	if token != "" {
		if err := svc.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}
	respondOK(c, "Logged out", nil)
}

// CurrentSession returns the rehydrated session with the caller's portal.
func CurrentSession(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, auth.ErrInvalidToken)
		return
	}
	p, _ := portal.For(sess.User.Role)
	respondOK(c, "Session active", gin.H{
		"session": sess,
		"portal":  p,
	})
}

// CreateStaff registers a new staff account. Admin and HR only.
func CreateStaff(c *gin.Context) {
	var req struct {
		repository.StaffRequest
		Password string `json:"password"`
	}
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := getAuthOrRespond(c)
	if !ok {
		return
	}

	user, err := svc.CreateStaff(c.Request.Context(), req.StaffRequest, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Staff member added", user)
}
