package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addschool -name NAME -address ADDRESS -lat LATITUDE -lng LONGITUDE - register a school")
	fmt.Println("  addteacher -name NAME -email EMAIL -school SCHOOL_CODE - register a teacher; the password will be prompted")
	fmt.Println("  gentoken -subject SUBJECT - generate an admin API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ExitOnError)
	addSchoolName := addSchoolCmd.String("name", "", "The school's name.")
	addSchoolAddress := addSchoolCmd.String("address", "", "The school's address.")
	addSchoolLat := addSchoolCmd.Float64("lat", 0, "The school's latitude.")
	addSchoolLng := addSchoolCmd.Float64("lng", 0, "The school's longitude.")

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ExitOnError)
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's name.")
	addTeacherEmail := addTeacherCmd.String("email", "", "The teacher's email. The password will be prompted next.")
	addTeacherSchool := addTeacherCmd.String("school", "", "The school code.")

	genTokenCmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	genTokenSubject := genTokenCmd.String("subject", "admin", "The token's subject.")

	switch args[1] {
	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSchoolName == "" || *addSchoolAddress == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		return cli.addSchool(*addSchoolName, *addSchoolAddress, *addSchoolLat, *addSchoolLng)
	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherName == "" || *addTeacherEmail == "" || *addTeacherSchool == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addTeacherCmd.Usage()
			return errHelp
		}
		return cli.addTeacher(*addTeacherName, *addTeacherEmail, string(pwd), *addTeacherSchool)
	case "gentoken":
		if err := genTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.genToken(*genTokenSubject)
	default:
		cli.printUsage()
		return errHelp
	}
}
