package main

import (
	stdlog "log"
	"os"
	"time"

	"github.com/billycuesta/nurayoga/api"
	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/backup"
	"github.com/billycuesta/nurayoga/core/billing"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
	emailsvc "github.com/billycuesta/nurayoga/services/email"
	logsvc "github.com/billycuesta/nurayoga/services/logger"
	"github.com/billycuesta/nurayoga/storage/database"
	sqlitedb "github.com/billycuesta/nurayoga/storage/database/sqlite"
)

func main() {
	core.Conf = core.NewConfig()

	std := stdlog.New(os.Stdout, core.Conf.AppName+" ", stdlog.LstdFlags|stdlog.Lshortfile)
	var logger core.Logger
	if core.Conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	if err = database.Migrate(db); err != nil {
		logger.Fatal("migrating database", err)
	}

	var mailSvc core.EmailService
	if core.Conf.EmailEnabled && core.Conf.SendgridAPIKey != "" {
		mailSvc = emailsvc.NewSendgridService(logger)
	} else {
		mailSvc = emailsvc.NewConsoleService()
	}

	studentRepo := sqlitedb.NewStudentRepository(db)
	teacherRepo := sqlitedb.NewTeacherRepository(db)
	classRepo := sqlitedb.NewClassRepository(db)
	enrRepo := sqlitedb.NewEnrollmentRepository(db)
	metaRepo := sqlitedb.NewMetaRepository(db)

	ledger := billing.NewLedger(studentRepo, metaRepo, mailSvc)

	// a new month opens as unpaid for everyone
	monthKey := billing.MonthKey(time.Now().UTC())
	if err = ledger.RolloverIfNeeded(monthKey); err != nil {
		logger.Fatal("payment rollover", err)
	}
	logger.Info("payment ledger up to date", monthKey)

	server := api.NewServer(api.Options{
		Addr:          core.Conf.Address(),
		Debug:         core.Conf.Debug,
		Logger:        logger,
		StudentSvc:    student.NewService(studentRepo, enrRepo),
		TeacherSvc:    teacher.NewService(teacherRepo, classRepo),
		ClassSvc:      class.NewService(classRepo, enrRepo),
		EnrollmentSvc: enrollment.NewService(enrRepo),
		Ledger:        ledger,
		Calculator:    billing.NewCalculator(studentRepo, classRepo, enrRepo, core.Conf.Pricing),
		BackupSvc:     backup.NewService(studentRepo, teacherRepo, classRepo, enrRepo),
	})

	logger.Info("starting server", core.Conf.Address())
	server.Start()
}
