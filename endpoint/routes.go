package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	AppName     string
	Repo        *repository.Repository
	Auth        *auth.Service
	Logger      zerolog.Logger
	CORSOrigins []string
	RateLimit   middleware.RateLimitConfig
	Latency     time.Duration
}

var (
	management     = []model.Role{model.RoleAdmin, model.RoleHR, model.RoleFinance, model.RoleManager}
	clinicalStaff  = []model.Role{model.RoleDoctor, model.RoleNurse, model.RoleAdmin}
	labStaff       = []model.Role{model.RoleLabTechnician, model.RoleRadiologist, model.RoleDoctor, model.RoleAdmin}
	pharmacyStaff  = []model.Role{model.RolePharmacist, model.RoleAdmin}
	financeStaff   = []model.Role{model.RoleFinance, model.RoleAdmin}
	bedStaff       = []model.Role{model.RoleManager, model.RoleAdmin, model.RoleNurse}
	patientViewers = []model.Role{model.RoleAdmin, model.RoleHR, model.RoleFinance, model.RoleManager, model.RoleDoctor, model.RoleNurse}
)

// withPatient returns the patient role plus every role in group and extra.
// Patients are further limited to their own id by SelfOrStaff.
func withPatient(group []model.Role, extra ...model.Role) []model.Role {
	roles := make([]model.Role, 0, len(group)+len(extra)+1)
	roles = append(roles, model.RolePatient)
	roles = append(roles, group...)
	return append(roles, extra...)
}

// NewRouter builds the gin engine with the full middleware stack and every
// API route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.ClientContext(),
		middleware.EndpointCallLogger(),
		middleware.Latency(cfg.Latency),
		middleware.Services(cfg.Repo, cfg.Auth),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	RegisterRoutes(r, cfg.Auth, cfg.RateLimit)
	return r
}

// RegisterRoutes mounts the API under /api. Handlers expect
// middleware.Services to run earlier in the chain.
func RegisterRoutes(r gin.IRouter, svc *auth.Service, rl middleware.RateLimitConfig) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login/:portal", middleware.RateLimiter(rl), Login)
	authGroup.POST("/register", middleware.RateLimiter(rl), Register)
	authGroup.DELETE("/logout", Logout)
	authGroup.GET("/session", middleware.ValidateSessionToken(svc), CurrentSession)

	api.GET("/departments", ListDepartments)
	api.GET("/departments/:id/doctors", ListDepartmentDoctors)
	api.GET("/rooms", ListRooms)
	api.GET("/portal/resolve", ResolvePath)

	protected := api.Group("", middleware.ValidateSessionToken(svc))
	protected.GET("/portal/navigation", GetNavigation)

	// Patient-scoped reads: a patient sees only their own records.
	patients := protected.Group("/patients/:id", middleware.SelfOrStaff("id"))
	patients.GET("/appointments", middleware.RequireRoles(withPatient(clinicalStaff, model.RoleManager)...), GetPatientAppointments)
	patients.GET("/tests", middleware.RequireRoles(withPatient(clinicalStaff)...), GetPatientTests)
	patients.GET("/prescriptions", middleware.RequireRoles(withPatient(clinicalStaff, model.RolePharmacist)...), GetPatientPrescriptions)
	patients.GET("/bills", middleware.RequireRoles(withPatient(financeStaff)...), GetPatientBills)
	patients.GET("/insurance", middleware.RequireRoles(withPatient(financeStaff)...), GetPatientInsurance)
	patients.GET("/discharge-summaries", middleware.RequireRoles(withPatient(clinicalStaff)...), GetPatientDischargeSummaries)
	patients.GET("/queries", middleware.RequireRoles(model.RolePatient, model.RoleAdmin), GetPatientQueries)
	patients.PUT("/insurance", middleware.RequireRoles(model.RolePatient, model.RoleAdmin), SubmitInsurance)
	patients.GET("/history", middleware.RequireRoles(clinicalStaff...), GetMedicalHistory)

	protected.POST("/appointments", middleware.RequireRoles(model.RolePatient, model.RoleAdmin), BookAppointment)
	protected.POST("/queries", middleware.RequireRoles(model.RolePatient), SubmitQuery)
	protected.POST("/bills/:id/pay", middleware.RequireRoles(model.RolePatient, model.RoleFinance, model.RoleAdmin), PayBill)

	// Doctor
	protected.GET("/doctors/:id/appointments", middleware.RequireRoles(model.RoleDoctor, model.RoleAdmin, model.RoleManager), GetDoctorAppointments)
	protected.PATCH("/appointments/:id", middleware.RequireRoles(model.RoleDoctor), UpdateAppointment)
	protected.POST("/tests", middleware.RequireRoles(model.RoleDoctor), OrderTests)
	protected.POST("/prescriptions", middleware.RequireRoles(model.RoleDoctor), AddPrescription)

	// Nurse
	protected.GET("/triage", middleware.RequireRoles(model.RoleNurse, model.RoleAdmin), GetTriageQueue)
	protected.POST("/triage/:appointmentId", middleware.RequireRoles(model.RoleNurse), SubmitTriage)

	// Lab and radiology
	protected.GET("/tests/pending", middleware.RequireRoles(labStaff...), GetPendingTests)
	protected.PATCH("/tests/:id/result", middleware.RequireRoles(model.RoleLabTechnician, model.RoleRadiologist), UpdateTestResult)

	// Pharmacy
	pharmacy := protected.Group("", middleware.RequireRoles(pharmacyStaff...))
	pharmacy.GET("/prescriptions/pending", GetPendingPrescriptions)
	pharmacy.POST("/prescriptions/:id/dispense", DispensePrescription)
	pharmacy.GET("/stock", GetMedicationStock)
	pharmacy.POST("/stock", AddMedicationStock)
	pharmacy.PATCH("/stock/:id", AdjustStock)

	// Administration
	protected.GET("/staff", middleware.RequireRoles(model.RoleAdmin, model.RoleHR, model.RoleManager), ListStaff)
	protected.POST("/staff", middleware.RequireRoles(model.RoleAdmin, model.RoleHR), CreateStaff)
	protected.GET("/patients", middleware.RequireRoles(patientViewers...), ListPatients)
	protected.GET("/dashboard", middleware.RequireRoles(model.RoleAdmin, model.RoleManager, model.RoleFinance), GetDashboardStats)
	protected.GET("/discharge-summaries", middleware.RequireRoles(model.RoleAdmin), ListDischargeSummaries)
	protected.POST("/discharge-summaries", middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor), GenerateDischargeSummary)
	protected.POST("/discharge-summaries/:id/approve", middleware.RequireRoles(model.RoleAdmin), ApproveDischargeSummary)
	protected.GET("/attendance", middleware.RequireRoles(model.RoleAdmin, model.RoleHR, model.RoleManager), ListAttendance)
	protected.GET("/financials", middleware.RequireRoles(management...), GetFinancials)
	protected.GET("/workload", middleware.RequireRoles(model.RoleManager, model.RoleAdmin), GetDoctorWorkload)
	protected.POST("/bills", middleware.RequireRoles(financeStaff...), AddBill)
	protected.GET("/queries", middleware.RequireRoles(model.RoleAdmin), ListQueries)
	protected.POST("/queries/:id/respond", middleware.RequireRoles(model.RoleAdmin), RespondToQuery)
	protected.POST("/queries/:id/review", middleware.RequireRoles(model.RoleAdmin), ReviewQuery)
	protected.GET("/icu-beds", middleware.RequireRoles(bedStaff...), ListICUBeds)
	protected.POST("/icu-beds/:id/assign", middleware.RequireRoles(bedStaff...), AssignICUBed)
	protected.POST("/icu-beds/:id/release", middleware.RequireRoles(bedStaff...), ReleaseICUBed)

	// Any staff
	staff := protected.Group("/attendance", middleware.RequireStaff())
	staff.POST("/clock-in", ClockIn)
	staff.POST("/clock-out", ClockOut)
	staff.GET("/today", TodaysAttendance)
}
