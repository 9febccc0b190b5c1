package main

import (
	"context"
	"fmt"

	"github.com/trezcool/mahudhurio/core/teacher"
)

func (cli *commandLine) addTeacher(name, email, pwd, schoolCode string) error {
	nt := teacher.NewTeacher{
		Name:       name,
		Email:      email,
		Password:   pwd,
		SchoolCode: schoolCode,
	}
	if err := nt.Validate(cli.validate); err != nil {
		return err
	}

	tch, err := cli.teacherSvc.Register(context.Background(), nt)
	if err != nil {
		return err
	}
	fmt.Printf("teacher registered: %s (%s)\n", tch.Name, tch.Code)
	return nil
}
