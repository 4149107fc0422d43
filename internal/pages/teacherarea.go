package pages

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tutorboard/internal/api"
	"tutorboard/internal/pkg/forms"
	"tutorboard/internal/query"
	"tutorboard/internal/session"
)

// htmlTimeLayout is what <input type="datetime-local"> submits.
const htmlTimeLayout = "2006-01-02T15:04"

// TeacherAreaHandler is the teacher persona's own corner: their lesson
// schedule (create/edit/delete until completed) and their profile with
// password change and photo upload.
type TeacherAreaHandler struct {
	*Deps
}

func NewTeacherAreaHandler(d *Deps) *TeacherAreaHandler { return &TeacherAreaHandler{Deps: d} }

func (h *TeacherAreaHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/lessons", h.Lessons)
	g.POST("/lessons", h.CreateLesson)
	g.POST("/lessons/:id/update", h.UpdateLesson)
	g.POST("/lessons/:id/delete", h.DeleteLesson)

	g.GET("/profile", h.Profile)
	g.POST("/profile", h.UpdateProfile)
	g.POST("/profile/password", h.UpdatePassword)
	g.POST("/profile/image", h.UploadImage)
}

func (h *TeacherAreaHandler) loadLessons(ctx context.Context, teacherID int64) ([]api.Lesson, error) {
	key := query.K("lessons", "teacher", strconv.FormatInt(teacherID, 10))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) ([]api.Lesson, error) {
		return h.API.Lessons().ByTeacher(ctx, teacherID)
	})
}

// loadProfile fetches the signed-in teacher through the cache, keyed by
// id. This cache entry is the single source of truth for the profile
// view; the session display copy only feeds the header.
func (h *TeacherAreaHandler) loadProfile(ctx context.Context, teacherID int64) (*api.Teacher, error) {
	key := query.K("teachers", "me", strconv.FormatInt(teacherID, 10))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (*api.Teacher, error) {
		return h.API.Auth().TeacherMe(ctx)
	})
}

func (h *TeacherAreaHandler) Lessons(c *gin.Context) {
	id := session.CurrentIdentity(c)
	base := gin.H{"Title": "My lessons"}

	lessons, err := h.loadLessons(c.Request.Context(), id.ID)
	if err != nil {
		h.failPage(c, err, "teacher_lessons.html", base)
		return
	}
	base["Rows"] = lessons
	h.render(c, http.StatusOK, "teacher_lessons.html", base)
}

type lessonForm struct {
	Name      string  `form:"name" binding:"required,min=2"`
	StartTime string  `form:"startTime" binding:"required"`
	EndTime   string  `form:"endTime" binding:"required"`
	Price     float64 `form:"price" binding:"required,gt=0"`
}

func (f lessonForm) times() (time.Time, time.Time, map[string]string) {
	start, err := time.Parse(htmlTimeLayout, f.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, map[string]string{"startTime": "Invalid start time"}
	}
	end, err := time.Parse(htmlTimeLayout, f.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, map[string]string{"endTime": "Invalid end time"}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, map[string]string{"endTime": "End must be after start"}
	}
	return start, end, nil
}

func (h *TeacherAreaHandler) renderLessonsWithDialog(c *gin.Context, teacherID int64, dialog string, form any, errs map[string]string) {
	base := gin.H{
		"Title":       "My lessons",
		"Dialog":      dialog,
		"Form":        formValues(form),
		"FieldErrors": errs,
	}
	lessons, err := h.loadLessons(c.Request.Context(), teacherID)
	if err != nil {
		h.failPage(c, err, "teacher_lessons.html", base)
		return
	}
	base["Rows"] = lessons
	h.render(c, http.StatusUnprocessableEntity, "teacher_lessons.html", base)
}

func (h *TeacherAreaHandler) CreateLesson(c *gin.Context) {
	id := session.CurrentIdentity(c)

	var f lessonForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderLessonsWithDialog(c, id.ID, "create", f, forms.FieldErrors(err))
		return
	}
	start, end, terrs := f.times()
	if terrs != nil {
		h.renderLessonsWithDialog(c, id.ID, "create", f, terrs)
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "lessons", func(ctx context.Context) error {
		_, err := h.API.Lessons().Create(ctx, api.CreateLessonInput{
			Name:      f.Name,
			StartTime: start,
			EndTime:   end,
			TeacherID: id.ID,
			Price:     f.Price,
		})
		return err
	})
	if err != nil {
		h.failToast(c, err, "Failed to create lesson", "/teacher/lessons")
		return
	}

	h.Sessions.Success(c, "Lesson created")
	c.Redirect(http.StatusSeeOther, "/teacher/lessons")
}

func (h *TeacherAreaHandler) UpdateLesson(c *gin.Context) {
	id := session.CurrentIdentity(c)
	lessonID, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid lesson id")
		c.Redirect(http.StatusSeeOther, "/teacher/lessons")
		return
	}

	var f lessonForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderLessonsWithDialog(c, id.ID, "edit-"+c.Param("id"), f, forms.FieldErrors(err))
		return
	}
	start, end, terrs := f.times()
	if terrs != nil {
		h.renderLessonsWithDialog(c, id.ID, "edit-"+c.Param("id"), f, terrs)
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "lessons", func(ctx context.Context) error {
		_, err := h.API.Lessons().Update(ctx, lessonID, api.UpdateLessonInput{
			Name:      f.Name,
			StartTime: &start,
			EndTime:   &end,
			Price:     &f.Price,
		})
		return err
	})
	if err != nil {
		h.failToast(c, err, "Failed to update lesson", "/teacher/lessons")
		return
	}

	h.Sessions.Success(c, "Lesson updated")
	c.Redirect(http.StatusSeeOther, "/teacher/lessons")
}

func (h *TeacherAreaHandler) DeleteLesson(c *gin.Context) {
	lessonID, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid lesson id")
		c.Redirect(http.StatusSeeOther, "/teacher/lessons")
		return
	}

	var f confirmForm
	if err := c.ShouldBind(&f); err != nil {
		h.Sessions.Fail(c, "Deletion must be confirmed")
		c.Redirect(http.StatusSeeOther, "/teacher/lessons")
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "lessons", func(ctx context.Context) error {
		return h.API.Lessons().Delete(ctx, lessonID)
	})
	if err != nil {
		h.failToast(c, err, "Failed to delete lesson", "/teacher/lessons")
		return
	}

	h.Sessions.Success(c, "Lesson deleted")
	c.Redirect(http.StatusSeeOther, "/teacher/lessons")
}

func (h *TeacherAreaHandler) Profile(c *gin.Context) {
	id := session.CurrentIdentity(c)
	base := gin.H{"Title": "Profile"}

	t, err := h.loadProfile(c.Request.Context(), id.ID)
	if err != nil {
		h.failPage(c, err, "profile.html", base)
		return
	}
	base["Teacher"] = t
	h.render(c, http.StatusOK, "profile.html", base)
}

func (h *TeacherAreaHandler) renderProfileWithDialog(c *gin.Context, teacherID int64, dialog string, form any, errs map[string]string, formError string) {
	base := gin.H{
		"Title":       "Profile",
		"Dialog":      dialog,
		"Form":        formValues(form),
		"FieldErrors": errs,
		"FormError":   formError,
	}
	t, err := h.loadProfile(c.Request.Context(), teacherID)
	if err != nil {
		h.failPage(c, err, "profile.html", base)
		return
	}
	base["Teacher"] = t
	h.render(c, http.StatusUnprocessableEntity, "profile.html", base)
}

func (h *TeacherAreaHandler) UpdateProfile(c *gin.Context) {
	id := session.CurrentIdentity(c)

	var f updateTeacherForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderProfileWithDialog(c, id.ID, "edit", f, forms.FieldErrors(err), "")
		return
	}

	var updated *api.Teacher
	err := h.Cache.Mutate(c.Request.Context(), "teachers", func(ctx context.Context) error {
		t, err := h.API.Teachers().Update(ctx, id.ID, f.input())
		updated = t
		return err
	})
	if err != nil {
		if api.IsAuthError(err) {
			h.failToast(c, err, "", "/teacher/profile")
			return
		}
		h.renderProfileWithDialog(c, id.ID, "edit", f, nil, api.ErrorMessage(err, "Failed to update profile"))
		return
	}

	// header name only; the profile page re-reads from the cache
	if updated != nil {
		h.Sessions.SetDisplayName(c, updated.FullName)
	}

	h.Sessions.Success(c, "Profile updated")
	c.Redirect(http.StatusSeeOther, "/teacher/profile")
}

type updatePasswordForm struct {
	OldPassword     string `form:"oldPassword" binding:"required,min=8"`
	NewPassword     string `form:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

func (h *TeacherAreaHandler) UpdatePassword(c *gin.Context) {
	id := session.CurrentIdentity(c)

	var f updatePasswordForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderProfileWithDialog(c, id.ID, "password", f, forms.FieldErrors(err), "")
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "teachers", func(ctx context.Context) error {
		return h.API.Teachers().UpdatePassword(ctx, id.ID, api.UpdateTeacherPasswordInput{
			OldPassword: f.OldPassword,
			NewPassword: f.NewPassword,
		})
	})
	if err != nil {
		if api.IsAuthError(err) {
			h.failToast(c, err, "", "/teacher/profile")
			return
		}
		h.renderProfileWithDialog(c, id.ID, "password", f, nil, api.ErrorMessage(err, "Failed to change password"))
		return
	}

	h.Sessions.Success(c, "Password changed")
	c.Redirect(http.StatusSeeOther, "/teacher/profile")
}

func (h *TeacherAreaHandler) UploadImage(c *gin.Context) {
	id := session.CurrentIdentity(c)

	fh, err := c.FormFile("image")
	if err != nil {
		h.Sessions.Fail(c, "Choose an image to upload")
		c.Redirect(http.StatusSeeOther, "/teacher/profile")
		return
	}
	file, err := fh.Open()
	if err != nil {
		h.Sessions.Fail(c, "Could not read the uploaded file")
		c.Redirect(http.StatusSeeOther, "/teacher/profile")
		return
	}
	defer func() { _ = file.Close() }()

	err = h.Cache.Mutate(c.Request.Context(), "teachers", func(ctx context.Context) error {
		_, err := h.API.Teachers().UploadImage(ctx, id.ID, fh.Filename, file)
		return err
	})
	if err != nil {
		h.failToast(c, err, "Failed to upload image", "/teacher/profile")
		return
	}

	h.Sessions.Success(c, "Photo updated")
	c.Redirect(http.StatusSeeOther, "/teacher/profile")
}
