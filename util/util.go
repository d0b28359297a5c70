package util

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PrettyPrint dumps a value as indented JSON, optionally prefixed.
func PrettyPrint(data ...interface{}) error {
	fmt.Println()
	byteData, err := json.MarshalIndent(data[len(data)-1], "", " ")
	if err != nil {
		return err
	}
	if len(data) > 1 {
		fmt.Println(data[:len(data)-1]...)
	}
	fmt.Println(string(byteData))
	fmt.Println()
	return nil
}

// RecoverGoroutinePanic keeps a panicking goroutine from taking the
// process down.
func RecoverGoroutinePanic() {
	if r := recover(); r != nil {
		logrus.Errorf("recovered from goroutine panic: %v", r)
	}
}
