package redact

import (
	"encoding/json"
	"os"
	"strings"
)

// Mask replaces the value of every sensitive key.
const Mask = "***REDACTED***"

var defaultKeys []string

func init() {
	// BEDROCKCHAT_REDACT_KEYS (comma-separated) overrides the built-in key list.
	if env := strings.TrimSpace(os.Getenv("BEDROCKCHAT_REDACT_KEYS")); env != "" {
		defaultKeys = normalize(strings.Split(env, ","))
		return
	}
	defaultKeys = []string{
		"accesskeyid", "aws_access_key_id", "secretaccesskey", "aws_secret_access_key",
		"sessiontoken", "aws_session_token", "authorization", "password", "secret", "token",
	}
}

// ScrubJSONBytes masks values of keys (case-insensitive) anywhere in a JSON document.
// Documents that do not parse are returned unchanged.
func ScrubJSONBytes(data []byte, keys []string) []byte {
	if len(data) == 0 {
		return data
	}
	if len(keys) == 0 {
		keys = defaultKeys
	}
	index := make(map[string]struct{}, len(keys))
	for _, k := range normalize(keys) {
		index[k] = struct{}{}
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return data
	}
	out, err := json.Marshal(scrubValue(v, index))
	if err != nil {
		return data
	}
	return out
}

func normalize(keys []string) []string {
	ret := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			ret = append(ret, k)
		}
	}
	return ret
}

func scrubValue(v interface{}, keys map[string]struct{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if _, ok := keys[strings.ToLower(k)]; ok {
				out[k] = Mask
				continue
			}
			out[k] = scrubValue(val, keys)
		}
		return out
	case []interface{}:
		for i := range t {
			t[i] = scrubValue(t[i], keys)
		}
		return t
	default:
		return v
	}
}
