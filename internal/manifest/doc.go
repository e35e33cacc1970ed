// Package manifest reads and rewrites the component manifest that records
// the released version.
//
// The manifest is a JSON document at <root>/<component>/manifest.json where
// <component> is the single directory under <root>. Only the "version" key
// is ever rewritten; every other key, the key order and the indentation are
// left as they were.
//
// Reads are lenient: JSONC comments and trailing commas are stripped via
// github.com/tidwall/jsonc before the value is looked up with
// github.com/tidwall/gjson. Writes edit the raw bytes in place with
// github.com/tidwall/sjson and replace the file atomically.
package manifest
