package visualizer_test

import (
	"testing"

	"github.com/leighmacdonald/gridiron-tui/internal/draw"
	"github.com/leighmacdonald/gridiron-tui/internal/field"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
	"github.com/leighmacdonald/gridiron-tui/internal/visualizer"
	"github.com/stretchr/testify/require"
)

func newVisualizer() (*visualizer.Visualizer, *draw.Document) {
	doc := draw.NewDocument(field.LengthYards, field.WidthYards)
	field.Render(doc)

	teams := map[string]play.Team{
		"BUF": {Abbr: "BUF", LogoWikipedia: "https://upload.wikimedia.org/buf.svg"},
		"NYJ": {Abbr: "NYJ", LogoESPN: "https://a.espncdn.com/nyj.png"},
	}

	return visualizer.New(doc, field.NewMapper("BUF"), teams), doc
}

func frame(team string, def string, playType string, yard float64, desc string) *play.Frame {
	f := play.NewFrame(team, def, playType, yard, desc)

	return &f
}

func markerX(t *testing.T, doc *draw.Document) float64 {
	t.Helper()

	elem, found := doc.Lookup(visualizer.IDMarker)
	require.True(t, found)
	line, ok := elem.Shape.(draw.Line)
	require.True(t, ok)

	return line.X1
}

func logo(t *testing.T, doc *draw.Document) draw.Image {
	t.Helper()

	elem, found := doc.Lookup(visualizer.IDLogo)
	require.True(t, found)
	require.Equal(t, draw.LayerLogo, elem.Layer)
	image, ok := elem.Shape.(draw.Image)
	require.True(t, ok)

	return image
}

func TestFirstFrame(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(nil, frame("BUF", "NYJ", "run", 75, ""))
	require.Equal(t, []string{visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
	require.InDelta(t, 85.0, markerX(t, doc), 0.0001)

	img := logo(t, doc)
	require.InDelta(t, 85.0-visualizer.LogoSize/2, img.X, 0.0001)
	require.InDelta(t, field.WidthYards/2-visualizer.LogoSize/2, img.Y, 0.0001)
	require.Equal(t, "https://upload.wikimedia.org/buf.svg", img.Href)
}

func TestOtherTeamDirection(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(nil, frame("NYJ", "BUF", "pass", 20, ""))
	require.InDelta(t, 90.0, markerX(t, doc), 0.0001)
}

func TestClearFrame(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "run", 75, ""), frame("BUF", "NYJ", "run", 70, ""))
	require.Contains(t, doc.IDs(), visualizer.IDRunLine)

	vis.Render(nil, nil)
	require.Empty(t, doc.IDs())
}

func TestResetIdempotent(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "punt", 60, ""), frame("NYJ", "BUF", "pass", 70, "short"))
	require.Contains(t, doc.IDs(), visualizer.IDKickArc)
	require.Contains(t, doc.IDs(), visualizer.IDPassArc)

	vis.Reset()
	vis.Reset()

	for _, id := range visualizer.OverlayIDs {
		_, found := doc.Lookup(id)
		require.False(t, found, id)
	}
	require.Equal(t, []string{visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
}

func TestKickoffShowsReceivingLogo(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "run", 50, ""), frame("BUF", "NYJ", "kickoff", 35, ""))
	require.Equal(t, "NYJ", logo(t, doc).Alt)
	require.Equal(t, "https://a.espncdn.com/nyj.png", logo(t, doc).Href)
	// No trajectory for the kick itself.
	require.Equal(t, []string{visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
}

func TestReturnArcAfterPunt(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("NYJ", "BUF", "punt", 60, ""), frame("BUF", "NYJ", "no_play", 70, ""))

	elem, found := doc.Lookup(visualizer.IDKickArc)
	require.True(t, found)
	require.Equal(t, draw.LayerOverlay, elem.Layer)
	path, ok := elem.Shape.(draw.QuadPath)
	require.True(t, ok)
	require.Equal(t, "0.6 0.6", path.Dash)
	require.InDelta(t, 50.0, path.X1, 0.0001)
	require.InDelta(t, 80.0, path.X2, 0.0001)
	// 30 yards * 0.25 = 7.5
	require.InDelta(t, field.WidthYards/2-7.5, path.CY, 0.0001)
	require.Contains(t, doc.IDs(), visualizer.IDMarker)
	require.Contains(t, doc.IDs(), visualizer.IDLogo)
}

func TestArcHeightClamped(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "run", 50, ""), frame("BUF", "NYJ", "pass", 49, ""))
	elem, found := doc.Lookup(visualizer.IDPassArc)
	require.True(t, found)
	require.InDelta(t, field.WidthYards/2-4, elem.Shape.(draw.QuadPath).CY, 0.0001) //nolint:forcetypeassert

	vis.Render(frame("BUF", "NYJ", "run", 99, ""), frame("BUF", "NYJ", "pass", 1, ""))
	elem, found = doc.Lookup(visualizer.IDPassArc)
	require.True(t, found)
	require.InDelta(t, field.WidthYards/2-24, elem.Shape.(draw.QuadPath).CY, 0.0001) //nolint:forcetypeassert
}

func TestExtraPointAfterTouchdown(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "touchdown", 2, ""), frame("BUF", "NYJ", "extra_point", 15, "T.Bass extra point is GOOD"))

	// Frozen at the touchdown spot, not the extra point yard line.
	require.InDelta(t, 12.0, markerX(t, doc), 0.0001)
	require.InDelta(t, 12.0-visualizer.LogoSize/2, logo(t, doc).X, 0.0001)

	elem, found := doc.Lookup(visualizer.IDEventText)
	require.True(t, found)
	text, ok := elem.Shape.(draw.Text)
	require.True(t, ok)
	require.Equal(t, "T.Bass extra point is GOOD", text.Content)
	require.False(t, text.Bold)

	require.Equal(t, []string{visualizer.IDEventText, visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
}

func TestExtraPointWithoutDesc(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "touchdown", 2, ""), frame("BUF", "NYJ", "xp", 15, ""))
	elem, found := doc.Lookup(visualizer.IDEventText)
	require.True(t, found)
	require.Equal(t, "Extra Point", elem.Shape.(draw.Text).Content) //nolint:forcetypeassert
}

func TestRunLine(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "pass", 75, ""), frame("BUF", "NYJ", "run", 70, ""))
	elem, found := doc.Lookup(visualizer.IDRunLine)
	require.True(t, found)
	line, ok := elem.Shape.(draw.Line)
	require.True(t, ok)
	require.InDelta(t, 85.0, line.X1, 0.0001)
	require.InDelta(t, 80.0, line.X2, 0.0001)
	require.InDelta(t, line.Y1, line.Y2, 0.0001)
}

func TestFieldGoal(t *testing.T) {
	vis, doc := newVisualizer()

	desc := "T.Bass 45 yard field goal is GOOD, Center-R.Ferguson, Holder-S.Martin and a few more words."
	vis.Render(frame("NYJ", "BUF", "run", 30, ""), frame("NYJ", "BUF", "field_goal", 27, desc))

	elem, found := doc.Lookup(visualizer.IDEventText)
	require.True(t, found)
	text, ok := elem.Shape.(draw.Text)
	require.True(t, ok)
	require.True(t, text.Bold)
	require.Equal(t, "FIELD GOAL — "+desc[:60], text.Content)

	require.Equal(t, []string{visualizer.IDEventText, visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
}

func TestTouchdown(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "pass", 20, ""), frame("BUF", "NYJ", "touchdown", 0, ""))

	elem, found := doc.Lookup(visualizer.IDEventText)
	require.True(t, found)
	require.Equal(t, "TOUCHDOWN — BUF", elem.Shape.(draw.Text).Content) //nolint:forcetypeassert

	require.Equal(t, []string{visualizer.IDEventText, visualizer.IDLogo, visualizer.IDMarker}, doc.IDs())
}

func TestPassTouchdown(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "run", 20, ""), frame("BUF", "NYJ", "pass_touchdown", 0, ""))
	require.Equal(t, []string{visualizer.IDEventText, visualizer.IDLogo, visualizer.IDMarker, visualizer.IDPassArc}, doc.IDs())
}

func TestScoringPlaysShowOnlyBanner(t *testing.T) {
	cases := []struct {
		prev string
		cur  string
	}{
		{"run", "field_goal"},
		{"pass", "touchdown"},
		{"run", "rush touchdown"},
		{"pass", "td"},
		{"run", "FG"},
		{"kickoff", "extra_point"},
	}

	for _, tc := range cases {
		t.Run(tc.prev+"_"+tc.cur, func(t *testing.T) {
			vis, doc := newVisualizer()

			vis.Render(frame("BUF", "NYJ", tc.prev, 40, ""), frame("BUF", "NYJ", tc.cur, 30, ""))

			ids := doc.IDs()
			require.Contains(t, ids, visualizer.IDEventText)
			require.NotContains(t, ids, visualizer.IDRunLine)
			require.NotContains(t, ids, visualizer.IDFieldGoal)
			require.NotContains(t, ids, visualizer.IDTouchdown)
		})
	}
}

func TestExtraPointAfterBareTD(t *testing.T) {
	vis, doc := newVisualizer()

	// Only a "touch" label carries the spot over to the extra point.
	vis.Render(frame("BUF", "NYJ", "td", 2, ""), frame("BUF", "NYJ", "extra_point", 15, "kick is GOOD"))
	require.InDelta(t, 25.0, markerX(t, doc), 0.0001)

	elem, found := doc.Lookup(visualizer.IDEventText)
	require.True(t, found)
	text, ok := elem.Shape.(draw.Text)
	require.True(t, ok)
	require.True(t, text.Bold)
	require.Equal(t, "EXTRA POINT — kick is GOOD", text.Content)
}

func TestMissingLogo(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(nil, frame("MIA", "BUF", "run", 50, ""))
	img := logo(t, doc)
	require.Empty(t, img.Href)
	require.Equal(t, "MIA", img.Alt)
}

func TestOverlaysBelowLogo(t *testing.T) {
	vis, doc := newVisualizer()

	vis.Render(frame("BUF", "NYJ", "kickoff", 65, ""), frame("NYJ", "BUF", "pass", 70, ""))

	var order []string
	for _, elem := range doc.Elements() {
		if elem.ID != "" {
			order = append(order, elem.ID)
		}
	}

	require.Equal(t, []string{visualizer.IDMarker, visualizer.IDKickArc, visualizer.IDPassArc, visualizer.IDLogo}, order)
}
