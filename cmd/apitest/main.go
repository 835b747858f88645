// Command apitest exercises a running holiday calendar API end to end.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Gregorian struct {
	ISO string `json:"iso"`
}

type Day struct {
	JD          float64   `json:"jd"`
	UnixMillis  int64     `json:"unix_ms"`
	WeekdayName string    `json:"weekday_name"`
	Gregorian   Gregorian `json:"gregorian"`
}

type Holiday struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Date        string `json:"date"`
}

type TableResponse struct {
	Year     int       `json:"year"`
	Language string    `json:"language"`
	Holidays []Holiday `json:"holidays"`
}

type OnResponse struct {
	Day      Day       `json:"day"`
	Holidays []Holiday `json:"holidays"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Source       string `json:"source"`
	Declarations int    `json:"declarations"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	source       string
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Holiday Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testHolidayTable()
	tr.testSpecificDates()
	tr.testConversions()
	tr.testEaster()
	tr.testEdgeCases()
	tr.testDeclarations()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	tr.source = health.Source
	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (%s, %d declarations)", health.Source, health.Declarations))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testHolidayTable() {
	tr.printSection("Holiday Tables")

	for _, year := range []int{1583, 2000, 2024, 4099} {
		var table TableResponse
		if err := tr.getData(fmt.Sprintf("/api/v1/holidays?year=%d", year), &table); err != nil {
			tr.recordError(fmt.Sprintf("Table %d", year), err.Error())
			continue
		}

		// Entries must be in non-decreasing date order
		sorted := true
		for i := 1; i < len(table.Holidays); i++ {
			if table.Holidays[i].Date < table.Holidays[i-1].Date {
				sorted = false
				break
			}
		}
		if !sorted {
			tr.recordError(fmt.Sprintf("Table %d", year), "holidays out of date order")
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%d: %d holidays in order", year, len(table.Holidays)))

		if tr.verbose {
			for _, h := range table.Holidays {
				fmt.Printf("    %s  %s\n", h.Date, h.DisplayName)
			}
		}
	}

	var es TableResponse
	if err := tr.getData("/api/v1/holidays?year=2024&lang=es", &es); err != nil {
		tr.recordError("Spanish table", err.Error())
	} else if es.Language != "es" {
		tr.recordError("Spanish table", fmt.Sprintf("Expected language es, got %s", es.Language))
	} else {
		tr.recordSuccess("lang=es served in Spanish")
	}
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		date     string
		expected []string
	}{
		{"2018-04-01", []string{"aprilfoolsday", "easter"}},
		{"2020-05-25", []string{"memorialday"}},
		{"2024-02-13", []string{"mardigras"}},
		{"2024-03-31", []string{"easter"}},
		{"2024-11-28", []string{"thanksgiving"}},
		{"2024-12-24", []string{"christmaseve"}},
		{"2024-12-25", []string{"christmasday"}},
		{"2025-04-20", []string{"easter"}},
		{"2025-07-04", []string{"fourthofjuly"}},
		{"2025-08-15", []string{}},
	}

	if tr.source == "database" && tr.verbose {
		fmt.Println("  (database source: custom declarations may add holidays)")
	}

	for _, tc := range testCases {
		var data OnResponse
		if err := tr.getData("/api/v1/holidays/on/"+tc.date, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var got []string
		for _, h := range data.Holidays {
			got = append(got, h.Name)
		}
		if containsAll(got, tc.expected) {
			tr.recordSuccess(fmt.Sprintf("%s (%s): %v", tc.date, data.Day.WeekdayName, got))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected %v, got %v", tc.expected, got))
		}
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	// Every notation of 2000-01-01
	paths := []string{
		"/api/v1/convert?gregorian=2000-01-01",
		"/api/v1/convert?jd=2451544.5",
		"/api/v1/convert?hebrew=5760-10-23",
		"/api/v1/convert?islamic=1420-9-24",
		"/api/v1/convert?unix_ms=946684800000",
	}
	for _, path := range paths {
		var day Day
		if err := tr.getData(path, &day); err != nil {
			tr.recordError(path, err.Error())
			continue
		}
		if day.JD == 2451544.5 && day.Gregorian.ISO == "2000-01-01" && day.WeekdayName == "Saturday" {
			tr.recordSuccess(fmt.Sprintf("%s -> JD %.1f", path, day.JD))
		} else {
			tr.recordError(path, fmt.Sprintf("Expected JD 2451544.5 Saturday, got %.1f %s", day.JD, day.WeekdayName))
		}
	}

	// Round trip through the Unix epoch
	var epoch Day
	if err := tr.getData("/api/v1/convert?unix_ms=0", &epoch); err != nil {
		tr.recordError("Unix epoch", err.Error())
	} else if epoch.Gregorian.ISO != "1970-01-01" {
		tr.recordError("Unix epoch", fmt.Sprintf("Expected 1970-01-01, got %s", epoch.Gregorian.ISO))
	} else {
		tr.recordSuccess("unix_ms=0 is 1970-01-01")
	}
}

func (tr *TestRunner) testEaster() {
	tr.printSection("Easter")

	testCases := []struct {
		path     string
		expected string
	}{
		{"/api/v1/easter/2024", "2024-03-31"},
		{"/api/v1/easter/2025", "2025-04-20"},
		{"/api/v1/easter/2025?offset=-47", "2025-03-04"},
		{"/api/v1/easter/2025?offset=49", "2025-06-08"},
	}
	for _, tc := range testCases {
		var data struct {
			Day Day `json:"day"`
		}
		if err := tr.getData(tc.path, &data); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		if data.Day.Gregorian.ISO == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s: %s", tc.path, tc.expected))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %s, got %s", tc.expected, data.Day.Gregorian.ISO))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path        string
		status      int
		description string
	}{
		{"/api/v1/holidays/on/invalid", 400, "Invalid date format rejected"},
		{"/api/v1/holidays/on/2023-02-29", 400, "Nonexistent date rejected"},
		{"/api/v1/holidays/on/2024-02-29", 200, "Leap day accepted"},
		{"/api/v1/holidays?year=1582", 400, "Year before 1583 rejected"},
		{"/api/v1/holidays?year=4100", 400, "Year after 4099 rejected"},
		{"/api/v1/holidays/festivus", 404, "Unknown holiday is 404"},
		{"/api/v1/convert", 400, "Convert without input rejected"},
		{"/api/v1/convert?jd=1&unix_ms=0", 400, "Convert with two inputs rejected"},
		{"/api/v1/convert?hebrew=5783-13-1", 400, "Adar II in a common year rejected"},
		{"/api/v1/convert?jd=1e18", 400, "Day past 9999-12-31 rejected"},
		{"/api/v1/easter/2025?offset=soon", 400, "Non-integer offset rejected"},
	}
	for _, tc := range testCases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == tc.status {
			tr.recordSuccess(tc.description)
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected HTTP %d, got %d", tc.status, resp.StatusCode))
		}
	}

	resp, err := tr.getRaw("/api/v1/holidays.ics?year=2025")
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar") && bytes.HasPrefix(body, []byte("BEGIN:VCALENDAR")) {
		tr.recordSuccess(fmt.Sprintf("ICS export: %d events", bytes.Count(body, []byte("BEGIN:VEVENT"))))
	} else {
		tr.recordError("ICS", "Expected a text/calendar VCALENDAR body")
	}
}

// testDeclarations adds and removes a holiday through the admin endpoints.
// It only runs against a database-backed server.
func (tr *TestRunner) testDeclarations() {
	tr.printSection("Declarations")

	if tr.source != "database" {
		fmt.Println("  (skipped: server uses a built-in rule set)")
		return
	}

	const name = "apitest-juneteenth"
	body := fmt.Sprintf(`{"name":%q,"rule":{"kind":"fixed","month":6,"day":19}}`, name)

	resp, err := tr.do(http.MethodPost, "/api/v1/declarations", body)
	if err != nil {
		tr.recordError("Create", err.Error())
		return
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		tr.recordError("Create", fmt.Sprintf("Expected HTTP 201, got %d", resp.StatusCode))
		return
	}
	tr.recordSuccess("Declaration created")

	var h Holiday
	if err := tr.getData("/api/v1/holidays/"+name+"?year=2025", &h); err != nil {
		tr.recordError("Reload", err.Error())
	} else if h.Date != "2025-06-19" {
		tr.recordError("Reload", fmt.Sprintf("Expected 2025-06-19, got %s", h.Date))
	} else {
		tr.recordSuccess("New declaration served after reload")
	}

	resp, err = tr.do(http.MethodPost, "/api/v1/declarations", body)
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode == http.StatusConflict {
			tr.recordSuccess("Duplicate declaration rejected")
		} else {
			tr.recordError("Duplicate", fmt.Sprintf("Expected HTTP 409, got %d", resp.StatusCode))
		}
	}

	resp, err = tr.do(http.MethodDelete, "/api/v1/declarations/"+name, "")
	if err != nil {
		tr.recordError("Delete", err.Error())
		return
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		tr.recordSuccess("Declaration deleted")
	} else {
		tr.recordError("Delete", fmt.Sprintf("Expected HTTP 200, got %d", resp.StatusCode))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// getData fetches path and decodes the envelope's data into target.
func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.getRaw(path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) do(method, path, body string) (*http.Response, error) {
	req, err := http.NewRequest(method, tr.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

func containsAll(got, want []string) bool {
	seen := make(map[string]bool, len(got))
	for _, g := range got {
		seen[g] = true
	}
	for _, w := range want {
		if !seen[w] {
			return false
		}
	}
	return len(want) > 0 || len(got) == 0
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for the declaration endpoints")
	verbose := flag.Bool("v", false, "Verbose output (list every holiday)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
