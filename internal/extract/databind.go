package extract

import (
	"log"
	"regexp"

	"github.com/dop251/goja"
)

var dataCallbackPayloadRegex = regexp.MustCompile(`AF_initDataCallback\s*\(\s*(\{[\s\S]*?\})\s*\)\s*;`)
var dottedTripletRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// dataCallbackVersion recovers a version from the data-callback payload by
// evaluating the object literal itself instead of pattern-matching its text.
// The payload is JS, not JSON (unquoted keys), so it runs under goja and the
// exported value is walked for the first dotted-triplet string. Any failure
// returns "" and the caller falls through to the textual patterns.
func dataCallbackVersion(script string) string {
	match := dataCallbackPayloadRegex.FindStringSubmatch(script)
	if len(match) < 2 {
		return ""
	}

	vm := goja.New()
	result, err := vm.RunString("(" + match[1] + ")")
	if err != nil {
		log.Printf("extract: data callback payload did not evaluate, falling back to textual patterns: %v", err)
		return ""
	}

	payload, ok := result.Export().(map[string]interface{})
	if !ok {
		return ""
	}

	// Only the "data" member is walked; sibling keys (key, hash,
	// sideChannel) never hold the version and map iteration order would
	// make the result nondeterministic.
	return firstTriplet(payload["data"])
}

// firstTriplet walks a goja-exported value depth-first and returns the first
// dotted-triplet string wrapped alone in an array, the structured equivalent
// of the strictest textual pattern. Bare strings are left to the textual
// cascade; accepting them here would let this stage outrank patterns it is
// only allowed to stand in for.
func firstTriplet(v interface{}) string {
	arr, ok := v.([]interface{})
	if !ok {
		return ""
	}
	if len(arr) == 1 {
		if s, ok := arr[0].(string); ok && dottedTripletRegex.MatchString(s) {
			return s
		}
	}
	for _, item := range arr {
		if s := firstTriplet(item); s != "" {
			return s
		}
	}
	return ""
}
