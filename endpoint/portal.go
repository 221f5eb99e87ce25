package endpoint

import (
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/portal"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
)

// GetNavigation returns the caller's portal with its navigation.
func GetNavigation(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	p, found := portal.For(user.Role)
	if !found {
		respondError(c, forbidden("Dashboard not available for your role."))
		return
	}
	respondOK(c, "Navigation retrieved", p)
}

// ResolvePath godoc
// @Summary      Resolve a portal path
// @Description  Tells the client which view to render for ?path=, or where to redirect
// @Tags         Portal
// @Produce      json
// @Param        path query string true "Client route, e.g. /hospital/triage"
// @Success      200 {object} util.APIResponse{data=portal.Decision} "View to render"
// @Success      307 {object} util.APIResponse{data=portal.Decision} "Redirect"
// @Router       /api/portal/resolve [get]
func ResolvePath(c *gin.Context) {
	var user *model.User
	if token := middleware.TokenFromRequest(c); token != "" {
		if svc := middleware.GetAuthService(c); svc != nil {
			if sess, err := svc.Resume(c.Request.Context(), token); err == nil {
				user = &sess.User
			}
		}
	}

	d := portal.Resolve(user, c.Query("path"))
	if d.Redirect != "" {
		util.CallUserFound(c, util.APISuccessParams{Msg: "Redirect", Data: d})
		return
	}
	respondOK(c, "View resolved", d)
}
