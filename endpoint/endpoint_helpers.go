package endpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errForbidden = errors.New("forbidden")

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getRepoOrRespond(c *gin.Context) (*repository.Repository, bool) {
	repo := middleware.GetRepository(c)
	if repo == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Data store not available", Err: fmt.Errorf("repository is nil")})
		return nil, false
	}
	return repo, true
}

func getAuthOrRespond(c *gin.Context) (*auth.Service, bool) {
	svc := middleware.GetAuthService(c)
	if svc == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Session service not available", Err: fmt.Errorf("auth service is nil")})
		return nil, false
	}
	return svc, true
}

// currentUserOrRespond returns the authenticated user. Routes using it sit
// behind ValidateSessionToken, so a miss is a wiring error.
func currentUserOrRespond(c *gin.Context) (model.User, bool) {
	user, ok := middleware.GetUser(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please log in to continue", Err: auth.ErrInvalidToken})
		return model.User{}, false
	}
	return user, true
}

// respondError maps a domain error onto the response envelope. Unexpected
// errors are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	params := util.APIErrorParams{Msg: err.Error(), Err: err}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.CallErrorNotFound(c, params)
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrValidation),
		errors.Is(err, repository.ErrInvalidTransition):
		util.CallUserError(c, params)
	case errors.Is(err, repository.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		util.CallUserNotAuthorized(c, params)
	case errors.Is(err, errForbidden):
		util.CallForbidden(c, params)
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Something went wrong, please try again", Err: errors.New("internal error")})
	}
}

func forbidden(msg string) error {
	return &repository.Error{Kind: errForbidden, Msg: msg}
}

// ownsPatientRecord reports whether user may act on patientID's records.
func ownsPatientRecord(user model.User, patientID string) bool {
	return !user.IsPatient() || user.ID == patientID
}

func respondOK(c *gin.Context, msg string, data interface{}) {
	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg, Data: data})
}

func respondCreated(c *gin.Context, msg string, data interface{}) {
	util.CallCreated(c, util.APISuccessParams{Msg: msg, Data: data})
}

// fetchAndRespond runs a read against the repository and writes its result.
func fetchAndRespond[T any](c *gin.Context, msg string, fetch func(ctx context.Context, repo *repository.Repository) (T, error)) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	data, err := fetch(c.Request.Context(), repo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, msg, data)
}
