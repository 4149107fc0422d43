package pages

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func paramsContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseListParamsDefaults(t *testing.T) {
	p := parseListParams(paramsContext("/panel/students"))
	assert.Equal(t, listParams{Search: "", Page: 1, Limit: defaultLimit, Status: ""}, p)
}

func TestParseListParamsReadsQuery(t *testing.T) {
	p := parseListParams(paramsContext("/panel/lessons?search=anna&page=3&limit=25&status=booked"))
	assert.Equal(t, listParams{Search: "anna", Page: 3, Limit: 25, Status: "booked"}, p)
}

func TestParseListParamsClampsBadValues(t *testing.T) {
	p := parseListParams(paramsContext("/panel/students?page=-2&limit=9999"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultLimit, p.Limit)

	p = parseListParams(paramsContext("/panel/students?page=abc&limit=xyz"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultLimit, p.Limit)
}

func TestBackToKeepsQueryString(t *testing.T) {
	c := paramsContext("/panel/students/5/block?search=ai&page=2&limit=10")
	assert.Equal(t, "/panel/students?search=ai&page=2&limit=10", backTo(c, "/panel/students"))

	c = paramsContext("/panel/students/5/block")
	assert.Equal(t, "/panel/students", backTo(c, "/panel/students"))
}

func TestPageURLKeepsFilters(t *testing.T) {
	fn := TemplateFuncs()["pageurl"].(func(string, listParams, int) string)
	got := fn("/panel/lessons", listParams{Search: "anna", Status: "booked", Limit: 10}, 3)
	assert.Equal(t, "/panel/lessons?limit=10&page=3&search=anna&status=booked", got)

	got = fn("/panel/students", listParams{Limit: 10}, 1)
	assert.Equal(t, "/panel/students?limit=10&page=1", got)
}

func TestDatetimeFunc(t *testing.T) {
	fn := TemplateFuncs()["datetime"].(func(time.Time) string)
	assert.Equal(t, "", fn(time.Time{}))
	assert.Equal(t, "01 Sep 2026 10:30", fn(time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)))
}

func TestMoneyFunc(t *testing.T) {
	fn := TemplateFuncs()["money"].(func(float64) string)
	assert.Equal(t, "5000.00", fn(5000))
	assert.Equal(t, "12.50", fn(12.5))
}

func TestFormValuesFlattensByFormTag(t *testing.T) {
	got := formValues(createPaymentForm{
		TeacherID:         7,
		LessonID:          3,
		TotalLessonAmount: 5000,
		PlatformComission: 12.5,
	})
	assert.Equal(t, map[string]string{
		"teacherId":         "7",
		"lessonId":          "3",
		"totalLessonAmount": "5000",
		"platformComission": "12.5",
	}, got)
}

func TestFormValuesNeverEchoesPasswords(t *testing.T) {
	got := formValues(createAdminForm{
		Username:        "root",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		Role:            "admin",
		PhoneNumber:     "+7700",
	})
	assert.Equal(t, "root", got["username"])
	assert.NotContains(t, got, "password")
	assert.NotContains(t, got, "confirmPassword")
}

func TestFormValuesZeroNumbersRenderEmpty(t *testing.T) {
	got := formValues(createPaymentForm{})
	assert.Equal(t, "", got["teacherId"])
	assert.Equal(t, "", got["platformComission"])
}

func TestFormValuesNonStructIsEmpty(t *testing.T) {
	assert.Empty(t, formValues("nope"))
	assert.Empty(t, formValues(nil))
}

func TestFormValuesSetPointerRendersZero(t *testing.T) {
	exp := 0
	got := formValues(updateTeacherForm{FullName: "Anna", Experience: &exp})
	assert.Equal(t, "0", got["experience"])

	got = formValues(updateTeacherForm{FullName: "Anna"})
	assert.Equal(t, "", got["experience"])
}

func TestUpdateTeacherFormKeepsZeroExperience(t *testing.T) {
	exp := 0
	in := updateTeacherForm{Experience: &exp}.input()
	if assert.NotNil(t, in.Experience) {
		assert.Equal(t, 0, *in.Experience)
	}

	in = updateTeacherForm{}.input()
	assert.Nil(t, in.Experience)
}

func TestIDParam(t *testing.T) {
	c := paramsContext("/panel/admins/12/update")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := idParam(c)
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = idParam(c)
	assert.False(t, ok)

	c.Params = gin.Params{{Key: "id", Value: "-4"}}
	_, ok = idParam(c)
	assert.False(t, ok)
}

func TestLessonFormTimes(t *testing.T) {
	f := lessonForm{StartTime: "2026-09-01T10:00", EndTime: "2026-09-01T11:00"}
	start, end, errs := f.times()
	assert.Nil(t, errs)
	assert.True(t, end.After(start))

	f = lessonForm{StartTime: "2026-09-01T11:00", EndTime: "2026-09-01T10:00"}
	_, _, errs = f.times()
	assert.Contains(t, errs, "endTime")

	f = lessonForm{StartTime: "not-a-time", EndTime: "2026-09-01T10:00"}
	_, _, errs = f.times()
	assert.Contains(t, errs, "startTime")
}
