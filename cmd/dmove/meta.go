package main

import (
	"fmt"

	"github.com/dmove/dmove/internal/version"
)

var descriptionTemplate = `
Keyboard to virtual left stick
  Version: %s (%s)
           %s
`

func Description() string {
	return fmt.Sprintf(descriptionTemplate, version.Version, version.Commit, version.Date)
}
