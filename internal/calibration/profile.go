package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/config"
)

// CurrentProfileVersion is bumped whenever the profile format or the
// meaning of a threshold changes; older profiles are then ignored.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile file name in the home directory.
const DefaultProfileFileName = ".fasteint_calibration.json"

// ProfileMaxAge is how long a cached profile is trusted.
const ProfileMaxAge = 30 * 24 * time.Hour

// calibratedOp is the kernel the threshold sweep times.
const calibratedOp = backend.OpWideningMul256

// CalibrationProfile records the outcome of a calibration run together with
// the hardware it applies to.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalParallelThreshold int `json:"optimal_parallel_threshold"`
	// Workers is the worker count the threshold was measured with.
	Workers int `json:"workers"`

	CalibrationBatch int    `json:"calibration_batch"`
	CalibrationOp    string `json:"calibration_op"`
	CalibrationTime  string `json:"calibration_time"`
}

// NewProfile returns a profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
		Workers:        runtime.GOMAXPROCS(0),
		CalibrationOp:  string(calibratedOp),
	}
}

// IsValid reports whether the profile was produced on hardware matching the
// current process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// AppliesTo reports whether the threshold still describes a run with the
// given worker count: valid for this hardware, measured on the kernel the
// sweep times today, with the same workers and recently enough.
func (p *CalibrationProfile) AppliesTo(workers int) bool {
	return p.IsValid() &&
		!p.IsStale(ProfileMaxAge) &&
		p.CalibrationOp == string(calibratedOp) &&
		p.Workers == workers
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &p, nil
}

// GetDefaultProfilePath returns ~/.fasteint_calibration.json, or the file
// name alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration applies a cached profile to an unset threshold when
// the profile applies to the configured worker count. It reports whether
// the profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.Threshold != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil {
		return cfg, false
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if !p.AppliesTo(workers) {
		return cfg, false
	}
	cfg.Threshold = p.OptimalParallelThreshold
	return cfg, true
}
