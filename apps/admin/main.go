package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/teacher"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	mongodb "github.com/trezcool/mahudhurio/storage/database/mongo"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	workDir, err := os.Getwd()
	errAndDie(err)
	conf := core.NewConfig(workDir)

	// set up DB
	ctx := context.Background()
	db, err := mongodb.Open(ctx, conf)
	errAndDie(err)
	defer db.Client().Disconnect(ctx) //nolint:errcheck
	errAndDie(mongodb.EnsureIndexes(ctx, db))

	schoolRepo := mongodb.NewSchoolRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	validate, _ := core.NewValidator()
	echoapi.ConfigureAuth(conf)

	// start CLI
	cli := commandLine{
		schoolSvc:  school.NewService(schoolRepo),
		teacherSvc: teacher.NewService(teacherRepo, schoolRepo, emailsvc.NewConsoleService(conf)),
		validate:   validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

type commandLine struct {
	schoolSvc  school.Service
	teacherSvc teacher.Service
	validate   *validator.Validate
}
