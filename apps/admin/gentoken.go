package main

import (
	"fmt"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
)

// genToken prints a signed admin token, mainly for pulling attendance reports
// without a teacher account.
func (cli *commandLine) genToken(subject string) error {
	token, err := echoapi.GenerateToken(echoapi.GetAdminClaims(subject))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
