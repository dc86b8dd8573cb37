package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/chargewatch/internal/analyzer"
	"github.com/blackwell-systems/chargewatch/internal/session"
)

func testClassified(id, user string, kwh float64) session.Classified {
	opts := session.DefaultClassifyOptions()
	opts.MicroThresholdKWh = 1.0
	return session.Classify(session.Record{
		SessionID:   id,
		User:        user,
		EnergyKWh:   kwh,
		StartTimeMs: time.Date(2026, 8, 1, 10, 0, 0, 0, time.Local).UnixMilli(),
		EndTimeMs:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.Local).UnixMilli(),
		Site:        "garage-a",
	}, opts)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 30, 0, 0, time.Local)
	got := Filename("/tmp/exports", "users", "csv", now)

	assert.Equal(t, filepath.Join("/tmp/exports", "chargewatch_users_20260823_153000.csv"), got)

	pattern := regexp.MustCompile(`chargewatch_\w+_\d{8}_\d{6}\.(csv|pdf)$`)
	assert.Regexp(t, pattern, Filename(".", "analyze", "pdf", time.Now()))
}

func TestFlatRows(t *testing.T) {
	rows := FlatRows([]session.Classified{
		testClassified("s1", "alice@example.com", 5),
		testClassified("s2", "", 0),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "alice@example.com", rows[0].User)
	assert.Equal(t, UnclaimedLabel, rows[1].User)
	assert.Equal(t, "NORMAL", rows[0].Category)
	assert.Equal(t, "2.0h", rows[0].Duration)
}

func TestGroupRowsUnclaimedLabel(t *testing.T) {
	groups := analyzer.GroupByUser([]session.Classified{
		testClassified("s1", "alice@example.com", 5),
		testClassified("s2", "", 0.5),
	}, analyzer.SortNone)

	rows := GroupRows(groups)
	require.Len(t, rows, 2)

	// Unclaimed group renders last and carries the explicit label.
	last := rows[len(rows)-1]
	assert.Equal(t, UnclaimedLabel, last.Group)
	assert.Equal(t, "MICRO", last.Category)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := FlatRows([]session.Classified{
		testClassified("s1", "alice@example.com", 5),
		testClassified("s2", "", 0),
	})

	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "s1", records[1][1])
	assert.Equal(t, "5.000", records[1][6])
	assert.Equal(t, UnclaimedLabel, records[2][2])
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	rows := GroupRows(analyzer.GroupByUser([]session.Classified{
		testClassified("s1", "alice@example.com", 5),
		testClassified("s2", "", 0),
	}, analyzer.SortNone))

	require.NoError(t, WritePDF(path, "Charging Sessions", rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestWritePDFEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, WritePDF(path, "Charging Sessions", nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
