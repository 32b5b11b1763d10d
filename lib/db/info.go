package db

// StoreInfo holds metadata about a store handle. All size values are
// estimates; a precise calculation would require re-encoding every entry.
type StoreInfo struct {
	Path                string     `json:"path"`
	SerializationMethod string     `json:"serialization_method"`
	Policy              DumpPolicy `json:"dump_policy"`
	TotalKeys           int        `json:"total_keys"`
	ScalarKeys          int        `json:"scalar_keys"`
	ListKeys            int        `json:"list_keys"`
	SizeBytes           int        `json:"size_bytes"`
	AvgEntrySize        int        `json:"avg_entry_size"`
	MedianEntrySize     int        `json:"median_entry_size"`
	TypicalEntrySize    int        `json:"typical_entry_size"`
}
