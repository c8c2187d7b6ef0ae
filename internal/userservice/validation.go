package userservice

import "github.com/amberlee2706/scribe/internal/common"

func validateName(v *common.Validator, name string) {
	v.CheckProvided(name, "name")
	v.CheckMaxLength(name, 50, "name")
}

func validatePassword(v *common.Validator, password string) {
	v.CheckProvided(password, "password")
	v.CheckMaxLength(password, 72, "password")
}

func validateInt(v *common.Validator, num int, name string) {
	v.CheckPositive(num, name)
}
