package module

import (
	"bighole/internal/platform/config"
	"bighole/internal/services/lookup/scan"
	"bighole/internal/services/lookup/service"
)

// Options holds configuration settings for the lookup module
type Options struct {
	Backend    string
	MaxResults int
	Scan       scan.Config
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	lf := cfg.Prefix("CORE_LOOKUP_")
	return Options{
		Backend:    lf.MayEnum("BACKEND", service.BackendFiles, service.BackendFiles, service.BackendPostgres),
		MaxResults: lf.MayInt("MAX_RESULTS", 100),
		Scan: scan.Config{
			Dir:           lf.MayString("CSV_DIR", "csv"),
			Manifest:      lf.MayCSV("FILES", []string{"eg-1.csv", "eg-2.csv", "eg-3.csv", "eg-4.csv"}),
			ChunksPerFile: lf.MayInt("CHUNKS_PER_FILE", 8),
			FileWorkers:   lf.MayInt("FILE_WORKERS", 8),
			MaxResults:    lf.MayInt("MAX_RESULTS", 100),
		},
	}
}
