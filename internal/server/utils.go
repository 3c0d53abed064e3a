package server

import (
	"github.com/bytedance/sonic"
)

// jsonAPI keeps JSON numbers as json.Number so example values and model
// output round-trip into CSV without float formatting changes.
var jsonAPI = sonic.Config{UseNumber: true}.Froze()

// createResponse creates a StdResponse with the given body and error
func createResponse[T any](body T, err error) StdResponse[T] {
	if err != nil {
		errMsg := err.Error()
		return StdResponse[T]{
			Body:  body,
			Error: &errMsg,
		}
	}
	return StdResponse[T]{
		Body:  body,
		Error: nil,
	}
}

func isWhitelisted(path string, whitelistedRoutes []string) bool {
	for _, route := range whitelistedRoutes {
		if path == route {
			return true
		}
	}
	return false
}
