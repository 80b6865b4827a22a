// Package mocker helps unit tests substitute package-level functions and state
package mocker

// Puts newVal into *orgVal and returns a function that puts the saved value back.
// Intended for deferred restoration:
//
//	defer mocker.ReplaceItem(&openDriver, fakeOpen)()
//
// - note the trailing call.
func ReplaceItem[T any](orgVal *T, newVal T) func() {
	saveVal := *orgVal
	*orgVal = newVal
	return func() { *orgVal = saveVal }
}
