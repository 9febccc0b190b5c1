package main

import (
	"context"
	"fmt"

	"github.com/trezcool/mahudhurio/core/school"
)

func (cli *commandLine) addSchool(name, address string, lat, lng float64) error {
	ns := school.NewSchool{
		Name:      name,
		Address:   address,
		Latitude:  lat,
		Longitude: lng,
	}
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}

	sch, existing, err := cli.schoolSvc.Register(context.Background(), ns)
	if err != nil {
		return err
	}
	if existing {
		fmt.Printf("school already registered: %s (%s)\n", sch.Name, sch.Code)
		return nil
	}
	fmt.Printf("school registered: %s (%s)\n", sch.Name, sch.Code)
	return nil
}
