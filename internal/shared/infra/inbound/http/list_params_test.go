package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

var limits = PageLimits{DefaultSize: 10, MaxSize: 50}

func contextFor(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/applications?"+rawQuery, nil)
	return c
}

func TestParseListParams_Defaults(t *testing.T) {
	p, err := ParseListParams(contextFor(""), limits)

	require.NoError(t, err)
	assert.Equal(t, listview.PageState{CurrentPage: 1, PageSize: 10}, p.Page)
	assert.Equal(t, "", p.Sort.Field)
	assert.False(t, p.Sort.Desc)
}

func TestParseListParams_AllFields(t *testing.T) {
	p, err := ParseListParams(contextFor("page=3&page_size=25&sort=lodged_at&order=DESC&search=%20queen%20st"), limits)

	require.NoError(t, err)
	assert.Equal(t, listview.PageState{CurrentPage: 3, PageSize: 25}, p.Page)
	assert.Equal(t, "lodged_at", p.Sort.Field)
	assert.True(t, p.Sort.Desc)
	assert.Equal(t, "queen st", p.Search)
}

func TestParseListParams_MinusPrefixMeansDesc(t *testing.T) {
	p, err := ParseListParams(contextFor("sort=-reference"), limits)

	require.NoError(t, err)
	assert.Equal(t, "reference", p.Sort.Field)
	assert.True(t, p.Sort.Desc)
}

func TestParseListParams_LegacyLimitOffset(t *testing.T) {
	p, err := ParseListParams(contextFor("limit=20&offset=40"), limits)

	require.NoError(t, err)
	assert.Equal(t, listview.PageState{CurrentPage: 3, PageSize: 20}, p.Page)
}

func TestParseListParams_Invalid(t *testing.T) {
	cases := []string{
		"page=0",
		"page=-2",
		"page_size=0",
		"page_size=51",
		"page=abc",
		"order=sideways",
		"limit=0",
		"limit=10&offset=-1",
		"search=" + strings.Repeat("x", 201),
	}
	for _, raw := range cases {
		t.Run(raw[:min(len(raw), 20)], func(t *testing.T) {
			_, err := ParseListParams(contextFor(raw), limits)
			assert.ErrorIs(t, err, listview.ErrInvalidArgument)
		})
	}
}

func TestTimeParam(t *testing.T) {
	from, err := TimeParam(contextFor("from=2024-02-01"), "from")
	require.NoError(t, err)
	assert.Equal(t, 2024, from.Year())

	ts, err := TimeParam(contextFor("from=2024-02-01T10:30:00Z"), "from")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	none, err := TimeParam(contextFor(""), "from")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = TimeParam(contextFor("from=yesterday"), "from")
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
}

func TestListParam(t *testing.T) {
	assert.Equal(t, []string{"Approved", "In Review"}, ListParam(contextFor("status=Approved,%20In%20Review,,"), "status"))
	assert.Nil(t, ListParam(contextFor(""), "status"))
}
