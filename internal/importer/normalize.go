package importer

import "strings"

// NormalizeKeys canonicalizes spreadsheet headers so that variants such as
// "Kode MK" and "kode_mk " map to the same key. Values pass through unchanged.
func NormalizeKeys(record map[string]string) map[string]string {
	out := make(map[string]string, len(record))
	for k, v := range record {
		out[NormalizeKey(k)] = v
	}
	return out
}

// NormalizeKey lower-cases and trims k and replaces spaces with underscores.
func NormalizeKey(k string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(k)), " ", "_")
}

// NormalizeAll applies NormalizeKeys to every record.
func NormalizeAll(records []map[string]string) []map[string]string {
	out := make([]map[string]string, len(records))
	for i, r := range records {
		out[i] = NormalizeKeys(r)
	}
	return out
}
