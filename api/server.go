package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/billycuesta/nurayoga/api/handlers"
	"github.com/billycuesta/nurayoga/api/helpers"
	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/backup"
	"github.com/billycuesta/nurayoga/core/billing"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
)

type Options struct {
	Addr          string
	Debug         bool
	Logger        core.Logger
	StudentSvc    *student.Service
	TeacherSvc    *teacher.Service
	ClassSvc      *class.Service
	EnrollmentSvc *enrollment.Service
	Ledger        *billing.Ledger
	Calculator    *billing.Calculator
	BackupSvc     *backup.Service
}

type server struct {
	opts   Options
	router *echo.Echo
}

func NewServer(opts Options) *server {
	s := &server{
		opts:   opts,
		router: echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.router.Debug = s.opts.Debug
	s.router.HideBanner = true
	s.router.Logger.SetLevel(log.INFO)
	s.router.HTTPErrorHandler = helpers.AppHTTPErrorHandler
	s.router.Use(
		middleware.Recover(),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogURI:    true,
			LogStatus: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				s.opts.Logger.Info("request", v.Status, v.Method, v.URI)
				return nil
			},
			LogMethod: true,
		}),
	)

	v1 := s.router.Group("/v1")
	handlers.RegisterStudentAPI(v1, s.opts.StudentSvc)
	handlers.RegisterTeacherAPI(v1, s.opts.TeacherSvc)
	handlers.RegisterClassAPI(v1, s.opts.ClassSvc, s.opts.EnrollmentSvc)
	handlers.RegisterBillingAPI(v1, s.opts.Ledger, s.opts.Calculator)
	handlers.RegisterBackupAPI(v1, s.opts.BackupSvc)
	handlers.RegisterMaintenanceAPI(v1, s.opts.StudentSvc, s.opts.EnrollmentSvc)
}

func (s *server) Start() {
	s.router.Logger.Fatal(s.router.Start(s.opts.Addr))
}
