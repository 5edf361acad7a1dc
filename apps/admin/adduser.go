package main

import (
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

// addSuperUser updates or creates a super admin account.
func (cli *commandLine) addSuperUser(email, name, pwd string) error {
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)

	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(user.NewUser{
			Name:            name,
			Email:           email,
			Role:            user.RoleSuperAdmin,
			Password:        pwd,
			PasswordConfirm: pwd,
		})
		return err
	}

	active := true
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            name,
		Role:            user.RoleSuperAdmin,
		IsActive:        &active,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
