// Package telemetry implements the opt-out usage reporting and per-user
// identity file referenced by spec.md §6 "Persistence"/"Environment" and
// consumed by the out-of-scope `upload` sub-command.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

// Event names reported by the CLI. Properties attached to these never
// include file paths, source contents, or module names.
const (
	CheckStarted   = "modbound:check_started"
	CheckCompleted = "modbound:check_completed"
	CheckFailed    = "modbound:check_failed"

	SyncStarted   = "modbound:sync_started"
	SyncCompleted = "modbound:sync_completed"

	TestRunStarted   = "modbound:test_run_started"
	TestRunCompleted = "modbound:test_run_completed"
)

var (
	// PublicKey is the posthog project key, set at build time via
	// -ldflags. Reporting is a no-op when empty.
	PublicKey string

	enabled     bool
	toolVersion string
)

// Init enables or disables reporting for the remainder of the process.
func Init(disabled bool) {
	enabled = !disabled
}

// SetVersion records the tool version attached to every reported event.
func SetVersion(version string) {
	toolVersion = version
}

func homeDirFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".modbound", ".env"), nil
}

func createEnvFile() error {
	envFile, err := homeDirFile()
	if err != nil {
		return err
	}
	if _, err := os.Stat(envFile); !os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(envFile), 0o755); err != nil {
		return fmt.Errorf("creating telemetry directory: %w", err)
	}
	env := map[string]string{"uuid": uuid.New().String()}
	if err := godotenv.Write(env, envFile); err != nil {
		return fmt.Errorf("writing telemetry identity file: %w", err)
	}
	return nil
}

// LoadIdentity ensures a per-user identity file exists and loads its UUID
// into the process environment, called once at CLI startup.
func LoadIdentity() {
	if err := createEnvFile(); err != nil {
		return
	}
	envFile, err := homeDirFile()
	if err != nil {
		return
	}
	_ = godotenv.Load(envFile)
}

// ReportEvent reports event with no additional properties.
func ReportEvent(event string) {
	ReportEventWithProperties(event, nil)
}

// ReportEventWithProperties reports event with platform metadata and the
// given properties merged in; a no-op when telemetry is disabled or no
// PublicKey was compiled in.
func ReportEventWithProperties(event string, properties map[string]interface{}) {
	if !enabled || PublicKey == "" {
		return
	}

	disableGeoIP := false
	client, err := posthog.NewWithConfig(PublicKey, posthog.Config{
		Endpoint:     "https://us.i.posthog.com",
		DisableGeoIP: &disableGeoIP,
	})
	if err != nil {
		return
	}
	defer client.Close()

	props := posthog.NewProperties()
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("go_version", runtime.Version())
	if toolVersion != "" {
		props.Set("modbound_version", toolVersion)
	}
	for k, v := range properties {
		props.Set(k, v)
	}

	_ = client.Enqueue(posthog.Capture{
		DistinctId: os.Getenv("uuid"),
		Event:      event,
		Properties: props,
	})
}
