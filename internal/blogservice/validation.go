package blogservice

import "github.com/amberlee2706/scribe/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.CheckProvided(title, "title")
	v.CheckMaxLength(title, 100, "title")
}

func validateInt(v *common.Validator, num int, name string) {
	v.CheckPositive(num, name)
}
