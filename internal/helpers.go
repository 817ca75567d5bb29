package internal

import "fmt"

// AssertNoError panics if a supposedly impossible error occurred.
func AssertNoError(err error, because string) {
	if err != nil {
		panic(fmt.Errorf("error unexpected because %s: %w", because, err))
	}
}
