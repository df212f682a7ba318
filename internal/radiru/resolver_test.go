package radiru

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokyoOnlyDoc = `<?xml version="1.0" encoding="UTF-8"?>
<radiru_config>
  <stream_url>
    <data>
      <areajp>東京</areajp>
      <area>tokyo</area>
      <r1hls><![CDATA[https://example/r1.m3u8]]></r1hls>
      <r2hls><![CDATA[]]></r2hls>
      <fmhls><![CDATA[https://example/fm.m3u8]]></fmhls>
    </data>
  </stream_url>
</radiru_config>`

func resolveString(t *testing.T, doc string, loc Location, ch Channel) (string, error) {
	t.Helper()
	return Resolve(strings.NewReader(doc), loc, ch)
}

func TestResolve_end_to_end(t *testing.T) {
	t.Run("r1_found", func(t *testing.T) {
		url, err := resolveString(t, tokyoOnlyDoc, Tokyo, NhkR1)
		require.NoError(t, err)
		assert.Equal(t, "https://example/r1.m3u8", url)
	})

	t.Run("fm_found", func(t *testing.T) {
		url, err := resolveString(t, tokyoOnlyDoc, Tokyo, NhkFM)
		require.NoError(t, err)
		assert.Equal(t, "https://example/fm.m3u8", url)
	})

	t.Run("r2_empty", func(t *testing.T) {
		_, err := resolveString(t, tokyoOnlyDoc, Tokyo, NhkR2)
		assert.ErrorIs(t, err, ErrEmptyEndpoint)
		assert.Contains(t, err.Error(), "東京")
	})

	t.Run("osaka_missing", func(t *testing.T) {
		_, err := resolveString(t, tokyoOnlyDoc, Osaka, NhkR1)
		assert.ErrorIs(t, err, ErrDocumentExhausted)
	})
}

func TestResolve_published_document(t *testing.T) {
	b, err := os.ReadFile("testdata/config_web.xml")
	require.NoError(t, err)
	doc := string(b)

	cases := []struct {
		loc  Location
		ch   Channel
		want string
	}{
		{Sapporo, NhkR1, "https://radio-stream.nhk.jp/hls/live/2023545/nhkradiruikr1/master.m3u8"},
		{Tokyo, NhkR1, "https://radio-stream.nhk.jp/hls/live/2023229/nhkradiruakr1/master.m3u8"},
		{Tokyo, NhkFM, "https://radio-stream.nhk.jp/hls/live/2023507/nhkradiruakfm/master.m3u8"},
		{Osaka, NhkR2, "https://radio-stream.nhk.jp/hls/live/2023501/nhkradiruakr2/master.m3u8"},
		{Fukuoka, NhkFM, "https://radio-stream.nhk.jp/hls/live/2023542/nhkradirulkfm/master.m3u8"},
	}
	for _, tc := range cases {
		t.Run(tc.loc.String()+"_"+tc.ch.String(), func(t *testing.T) {
			url, err := resolveString(t, doc, tc.loc, tc.ch)
			require.NoError(t, err)
			assert.Equal(t, tc.want, url)
		})
	}

	for _, st := range Stations() {
		url, err := resolveString(t, doc, st.Location, st.Channel)
		require.NoError(t, err, "%s/%s", st.Location, st.Channel)
		assert.True(t, strings.HasPrefix(url, "https://radio-stream.nhk.jp/"), url)
	}
}

func TestResolve_record_boundary_isolation(t *testing.T) {
	doc := `<root>
  <data>
    <area>osaka</area>
    <r1hls><![CDATA[https://example/osaka-r1.m3u8]]></r1hls>
  </data>
  <data>
    <area>tokyo</area>
    <r1hls><![CDATA[ ]]></r1hls>
  </data>
</root>`

	_, err := resolveString(t, doc, Tokyo, NhkR1)
	assert.ErrorIs(t, err, ErrEmptyEndpoint)

	t.Run("missing_slot_after_filled_record", func(t *testing.T) {
		doc := `<root>
  <data><area>osaka</area><fmhls>https://example/osaka-fm.m3u8</fmhls></data>
  <data><area>tokyo</area></data>
</root>`
		_, err := resolveString(t, doc, Tokyo, NhkFM)
		assert.ErrorIs(t, err, ErrEmptyEndpoint)
	})
}

func TestResolve_exhausted_regardless_of_order(t *testing.T) {
	records := []string{
		`<data><area>osaka</area><r1hls>https://example/o.m3u8</r1hls></data>`,
		`<data><area>nagoya</area><r1hls>https://example/n.m3u8</r1hls></data>`,
		`<data><area>sendai</area><r1hls>https://example/s.m3u8</r1hls></data>`,
	}
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}}
	for _, order := range orders {
		var b strings.Builder
		b.WriteString("<root>")
		for _, i := range order {
			b.WriteString(records[i])
		}
		b.WriteString("</root>")

		_, err := resolveString(t, b.String(), Tokyo, NhkR1)
		assert.ErrorIs(t, err, ErrDocumentExhausted, "order %v", order)
	}
}

func TestResolve_first_match_wins(t *testing.T) {
	doc := `<root>
  <data><area>tokyo</area><r1hls>https://example/first.m3u8</r1hls></data>
  <data><area>tokyo</area><r1hls>https://example/second.m3u8</r1hls></data>
</root>`
	url, err := resolveString(t, doc, Tokyo, NhkR1)
	require.NoError(t, err)
	assert.Equal(t, "https://example/first.m3u8", url)
}

func TestResolve_stops_at_match(t *testing.T) {
	// Anything after the matching record is never read.
	doc := `<root><data><area>tokyo</area><r1hls>https://example/r1.m3u8</r1hls></data><broken`
	url, err := resolveString(t, doc, Tokyo, NhkR1)
	require.NoError(t, err)
	assert.Equal(t, "https://example/r1.m3u8", url)
}

func TestResolve_lowercases_endpoints(t *testing.T) {
	doc := `<root><data><area>tokyo</area><r1hls><![CDATA[HTTPS://Example/R1.m3u8]]></r1hls></data></root>`
	url, err := resolveString(t, doc, Tokyo, NhkR1)
	require.NoError(t, err)
	assert.Equal(t, "https://example/r1.m3u8", url)
}

func TestResolve_region_key_is_exact(t *testing.T) {
	doc := `<root><data><area>Tokyo</area><r1hls>https://example/r1.m3u8</r1hls></data></root>`
	_, err := resolveString(t, doc, Tokyo, NhkR1)
	assert.ErrorIs(t, err, ErrDocumentExhausted)
}

func TestResolve_ignores_unknown_tags(t *testing.T) {
	doc := `<root><data>
  <areajp>東京</areajp>
  <apikey>001</apikey>
  <area>tokyo</area>
  <areakey>130</areakey>
  <r1hls>https://example/r1.m3u8</r1hls>
  <extra><![CDATA[https://example/other.m3u8]]></extra>
</data></root>`
	url, err := resolveString(t, doc, Tokyo, NhkR1)
	require.NoError(t, err)
	assert.Equal(t, "https://example/r1.m3u8", url)
}

func TestResolve_malformed(t *testing.T) {
	cases := map[string]string{
		"unbalanced":    `<root><data><area>tokyo</area></r1hls></data></root>`,
		"unclosed":      `<root><data><area>osaka</area></data>`,
		"bad_attribute": `<root><data area=tokyo></data></root>`,
		"garbage_tag":   `<root><<data></root>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := resolveString(t, doc, Tokyo, NhkR1)
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func TestResolve_empty_input(t *testing.T) {
	_, err := resolveString(t, "", Tokyo, NhkR1)
	assert.ErrorIs(t, err, ErrDocumentExhausted)
}

func TestResolve_invalid_enum(t *testing.T) {
	_, err := resolveString(t, tokyoOnlyDoc, Location(99), NhkR1)
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = resolveString(t, tokyoOnlyDoc, Tokyo, Channel(-1))
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
