package telemetry

import (
	"fmt"
	"sync"
	"testing"
)

// TestingAPI implements API by logging to the test and remembering every report,
// so tests can assert that a component reported what it should have.
type TestingAPI struct {
	t testing.TB

	mutex    *sync.Mutex
	broken   *[]string
	warnings *[]string
}

func NewTestingAPI(t testing.TB) TestingAPI {
	return TestingAPI{
		t:        t,
		mutex:    &sync.Mutex{},
		broken:   &[]string{},
		warnings: &[]string{},
	}
}

func (a TestingAPI) ReportBroken(id string, params ...any) {
	a.t.Log("[broken]", id, fmt.Sprint(params...))
	a.mutex.Lock()
	defer a.mutex.Unlock()
	*a.broken = append(*a.broken, id)
}

func (a TestingAPI) ReportWarning(id string, params ...any) {
	a.t.Log("[warning]", id, fmt.Sprint(params...))
	a.mutex.Lock()
	defer a.mutex.Unlock()
	*a.warnings = append(*a.warnings, id)
}

func (a TestingAPI) ReportDebug(msg string, params ...any) {
	a.t.Log("[debug]", msg, fmt.Sprint(params...))
}

func (a TestingAPI) ReportCount(id string, count int64) {
	a.t.Log("[count]", id, count)
}

// Broken returns the ids passed to ReportBroken so far.
func (a TestingAPI) Broken() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return append([]string(nil), *a.broken...)
}

// Warnings returns the ids passed to ReportWarning so far.
func (a TestingAPI) Warnings() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return append([]string(nil), *a.warnings...)
}
