// Package envvar provides typed access to the environment variables which tweak the behavior of the REST client.
package envvar

import (
	"os"
	"strconv"
	"time"
)

// GetInt returns the int value of the environmental variable varName, if the env var is not an int or empty it will
// return 0, false.
func GetInt(varName string) (int, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetDuration returns the time.Duration value of the environmental variable varName, if the env var is empty or not a
// valid duration string it will return 0, false.
func GetDuration(varName string) (time.Duration, bool) {
	val, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		return 0, false
	}

	return duration, true
}
