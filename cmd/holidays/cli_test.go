package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/holiday-calendar/internal/database"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "HOLIDAYS_LANG", "HOLIDAYS_RULES", "HOLIDAYS_DB", "HOLIDAYS_JSON"} {
		if _, set := os.LookupEnv(key); set {
			t.Setenv(key, "")
		}
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "holidays dev\n", out)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list", "2023")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 19) // header + 18
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "2023-02-14")
	assert.Contains(t, lines[1], "Valentine's Day")
}

func TestList_JSON(t *testing.T) {
	out, err := execute(t, "list", "2023", "--json", "--rules", "extended")
	require.NoError(t, err)

	var table render.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, 2023, table.Year)
	assert.Len(t, table.Holidays, len(holiday.ExtendedDeclarations()))
}

func TestList_BadYear(t *testing.T) {
	_, err := execute(t, "list", "1200")
	assert.ErrorContains(t, err, "year must be between")

	_, err = execute(t, "list", "soon")
	assert.ErrorContains(t, err, "must be an integer")
}

func TestList_UnknownRuleSet(t *testing.T) {
	_, err := execute(t, "list", "2023", "--rules", "lunar")
	assert.ErrorContains(t, err, `unknown rule set "lunar"`)
}

func TestOn(t *testing.T) {
	out, err := execute(t, "on", "2018-04-01")
	require.NoError(t, err)
	assert.Contains(t, out, "April Fools' Day, Easter")

	out, err = execute(t, "on", "2018-04-01", "--json")
	require.NoError(t, err)

	var got struct {
		Day      render.Day       `json:"day"`
		Holidays []render.Holiday `json:"holidays"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Holidays, 2)
	assert.Equal(t, "aprilfoolsday", got.Holidays[0].Name)
	assert.Equal(t, "easter", got.Holidays[1].Name)
}

func TestDate(t *testing.T) {
	out, err := execute(t, "date", "thanksgiving", "2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-11-23 Thursday Thanksgiving\n", out)

	out, err = execute(t, "date", "passover", "2023", "--rules", "extended")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2023-04-06 "))

	_, err = execute(t, "date", "passover", "2023")
	assert.ErrorContains(t, err, `unknown holiday "passover"`)
}

func TestDate_Language(t *testing.T) {
	out, err := execute(t, "date", "christmasday", "2023", "--lang", "es")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-25 lunes Navidad\n", out)
}

func TestDate_LanguageFromEnv(t *testing.T) {
	t.Setenv("LANG", "es_MX.UTF-8")
	assert.Equal(t, "es-MX", envLanguage())

	t.Setenv("LANG", "C")
	assert.Equal(t, "", envLanguage())
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "convert", "gregorian", "2000-01-01", "--json")
	require.NoError(t, err)

	var day render.Day
	require.NoError(t, json.Unmarshal([]byte(out), &day))
	assert.Equal(t, 2451544.5, day.JD)
	assert.Equal(t, 5760, day.Hebrew.Year)
	assert.Equal(t, 1420, day.Islamic.Year)

	out, err = execute(t, "convert", "jd", "2451544.5")
	require.NoError(t, err)
	assert.Contains(t, out, "2000-01-01")
	assert.Contains(t, out, "946684800000")

	_, err = execute(t, "convert", "julian", "1")
	assert.ErrorContains(t, err, "unknown notation")

	_, err = execute(t, "convert", "jd", "1e18")
	assert.ErrorContains(t, err, "outside 0622-07-19 to 9999-12-31")
}

func TestEaster(t *testing.T) {
	out, err := execute(t, "easter", "2024", "--json", "--offset", "-2")
	require.NoError(t, err)

	var got struct {
		Offset int        `json:"offset"`
		Day    render.Day `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, -2, got.Offset)
	assert.Equal(t, "2024-03-29", got.Day.Gregorian.ISO)
}

func TestICS_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")

	out, err := execute(t, "ics", "2023", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 18, strings.Count(string(data), "BEGIN:VEVENT"))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: extended\nlang: es\n"), 0o644))

	out, err := execute(t, "date", "christmasday", "2023", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-25 lunes Navidad\n", out)

	// Flags win over the file
	out, err = execute(t, "date", "christmasday", "2023", "--config", path, "--lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-25 Monday Christmas Day\n", out)

	_, err = execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("HOLIDAYS_RULES", "extended")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"date", "yomkippur", "2023"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "2023-09-25 "))
}

func TestDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.db")

	db, err := database.Open(database.DefaultConfig(path), nil)
	require.NoError(t, err)
	_, err = db.Migrate(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.ReplaceDeclarations(context.Background(), []holiday.Declaration{
		{Name: "juneteenth", Rule: holiday.FixedDate{Month: 6, Day: 19}},
	}))
	require.NoError(t, db.Close())

	out, err := execute(t, "list", "2023", "--db", path, "--json")
	require.NoError(t, err)

	var table render.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	require.Len(t, table.Holidays, 1)
	assert.Equal(t, "2023-06-19", table.Holidays[0].Date)
}
