package main

import (
	"time"

	"github.com/foodiapp/foodi-triggers/cmd"
	"github.com/foodiapp/foodi-triggers/util"
)

func main() {
	data := map[string]interface{}{
		"startTime": time.Now().Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":   "Starting foodi trigger service . . .",
		"repo":      "foodi-triggers",
	}
	util.PrettyPrint(data)
	cmd.New().Execute()
}
