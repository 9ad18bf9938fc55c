/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/tasknest/cmd"
	"github.com/josephgoksu/tasknest/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
