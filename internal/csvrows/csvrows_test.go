package csvrows_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	const data = "week, posteam ,desc\r\n1,BUF,\"(15:00) J.Allen pass short left to S.Diggs, 5 yds\"\r\n2,NYJ,\"He said \"\"go\"\"\nand left\"\n3"

	records := csvrows.Parse(data)
	require.Len(t, records, 3)

	require.Equal(t, "1", records[0]["week"])
	require.Equal(t, "BUF", records[0]["posteam"])
	require.Equal(t, "(15:00) J.Allen pass short left to S.Diggs, 5 yds", records[0]["desc"])

	require.Equal(t, "He said \"go\"\nand left", records[1]["desc"])

	// Short trailing row without a final newline.
	require.Equal(t, "3", records[2]["week"])
	require.Empty(t, records[2]["posteam"])
	require.Contains(t, records[2], "desc")
}

func TestParseEmpty(t *testing.T) {
	require.Empty(t, csvrows.Parse(""))
	require.Empty(t, csvrows.Parse("week,posteam\n"))
}

func TestParseReader(t *testing.T) {
	records, err := csvrows.ParseReader(strings.NewReader("team_abbr,team_logo_espn\nBUF,https://a.espncdn.com/i/teamlogos/nfl/500/buf.png\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "BUF", records[0].Get("team_abbr"))
	require.Empty(t, records[0].Get("missing"))
}

func TestRoundTrip(t *testing.T) {
	header := []string{"week", "play_type", "desc"}
	rows := [][]string{
		{"1", "pass", `J.Allen pass deep right, "INTERCEPTED"`},
		{"1", "run", "J.Cook up the middle,\nno gain"},
		{"2", "", `""`},
		{"10", "field_goal", "T.Bass 45 yard field goal is GOOD, Center-R.Ferguson, Holder-S.Martin."},
	}

	for idx := range 50 {
		rows = append(rows, []string{fmt.Sprint(idx % 18), "punt", strings.Repeat(`a,"b"`, idx%4)})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	require.NoError(t, writer.Write(header))
	require.NoError(t, writer.WriteAll(rows))

	records := csvrows.Parse(buf.String())
	require.Len(t, records, len(rows))

	for idx, row := range rows {
		for col, name := range header {
			require.Equal(t, row[col], records[idx][name], "row %d col %s", idx, name)
		}
	}
}
