package common

import (
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

var Config *shared.Config
