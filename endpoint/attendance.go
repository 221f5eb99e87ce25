package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// ListAttendance returns every attendance record.
func ListAttendance(c *gin.Context) {
	fetchAndRespond(c, "Attendance retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.AttendanceRecord, error) {
		return repo.Attendance(ctx)
	})
}

// TodaysAttendance returns the caller's record for today; data is null
// before clock-in.
func TodaysAttendance(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	fetchAndRespond(c, "Attendance retrieved", func(ctx context.Context, repo *repository.Repository) (*model.AttendanceRecord, error) {
		return repo.TodaysAttendance(ctx, user.ID)
	})
}

// ClockIn starts today's attendance record for the session user. Repeats return the same record.
func ClockIn(c *gin.Context) {
	clock(c, "Clocked in", (*repository.Repository).ClockIn)
}

// ClockOut closes today's attendance record for the session user.
func ClockOut(c *gin.Context) {
	clock(c, "Clocked out", (*repository.Repository).ClockOut)
}

func clock(c *gin.Context, msg string, op func(*repository.Repository, context.Context, string) (model.AttendanceRecord, error)) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	rec, err := op(repo, c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, msg, rec)
}
