package commentservice

import "github.com/amberlee2706/scribe/internal/common"

func validateContent(v *common.Validator, content string) {
	v.CheckProvided(content, "content")
}

func validateInt(v *common.Validator, num int, name string) {
	v.CheckPositive(num, name)
}
