package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/leave"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	smssvc "github.com/trezcool/mahudhurio/services/sms"
	mongodb "github.com/trezcool/mahudhurio/storage/database/mongo"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	conf := core.NewConfig(workDir)

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	db, err := mongodb.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Client().Disconnect(ctx); err != nil {
			logger.Error(fmt.Sprintf("disconnecting database: %v", err), err)
		}
	}()
	if err = mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal(fmt.Sprintf("creating indexes: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	var smsSvc core.SMSService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
		smsSvc = smssvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
		smsSvc = smssvc.NewTwilioService(conf, logger)
	}

	schoolRepo := mongodb.NewSchoolRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	leaveRepo := mongodb.NewLeaveRepository(db)

	schoolSvc := school.NewService(schoolRepo)
	teacherSvc := teacher.NewService(teacherRepo, schoolRepo, mailSvc)
	studentSvc := student.NewService(studentRepo, teacherRepo)
	attendanceSvc := attendance.NewService(attendanceRepo, studentRepo, teacherRepo, schoolRepo, mailSvc, smsSvc, logger)
	leaveSvc := leave.NewService(leaveRepo, studentRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			SchoolSvc:     schoolSvc,
			TeacherSvc:    teacherSvc,
			StudentSvc:    studentSvc,
			AttendanceSvc: attendanceSvc,
			LeaveSvc:      leaveSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		shutCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(shutCtx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
